// Package setting provides the owning holders for configuration values.
//
// A Setting owns exactly one value. Holders are move-only: Go cannot reject
// copies at compile time, so each holder carries a marker that go vet's
// copylocks check reports on any by-value copy, and an explicit moved flag.
// Take and MoveFrom transfer the value; any later access to the moved-from
// holder panics with ErrMoved.
//
// Pin holds a hardware pin binding and forwards the common pin operations,
// so call sites rarely need Get.
package setting
