package builder

import "strconv"

// NameFn names the molecule at a zero-based index within one constructor.
// It must be pure: the same index always yields the same name.
type NameFn func(idx int) string

// ConstantName names every molecule name.
func ConstantName(name string) NameFn {
	return func(int) string { return name }
}

// Alternating cycles through names, e.g. A,B,A,B for a copolymer.
// Panics if names is empty.
func Alternating(names ...string) NameFn {
	if len(names) == 0 {
		panic("builder: Alternating() needs at least one name")
	}
	cp := append([]string(nil), names...)

	return func(idx int) string { return cp[idx%len(cp)] }
}

// Indexed returns prefix + decimal index, e.g. "M0", "M1".
func Indexed(prefix string) NameFn {
	return func(idx int) string { return prefix + strconv.Itoa(idx) }
}
