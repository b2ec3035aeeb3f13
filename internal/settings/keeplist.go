package settings

import (
	"strconv"
	"strings"
)

// AllSentinel is the string value that means "keep everything".
const AllSentinel = "all"

type keepKind int

const (
	keepAbsent keepKind = iota
	keepAll
	keepNotList
	keepItems
)

// KeepList is a configured keep-list. Besides a concrete list of names it can
// be absent, the "all" sentinel, or a value of the wrong shape. Features that
// consume a KeepList decide for themselves what each state means.
type KeepList struct {
	kind  keepKind
	items []string
}

// Keep returns a KeepList holding the given names. Keep() with no arguments is
// an empty list, which is distinct from an absent one.
func Keep(items ...string) KeepList {
	return KeepList{kind: keepItems, items: append([]string{}, items...)}
}

// KeepAll returns the "all" sentinel.
func KeepAll() KeepList { return KeepList{kind: keepAll} }

// NotAList returns a KeepList for a value that was present but not a sequence.
func NotAList() KeepList { return KeepList{kind: keepNotList} }

// IsSet reports whether the key was present at all.
func (k KeepList) IsSet() bool { return k.kind != keepAbsent }

// IsAll reports whether the value is the "all" sentinel.
func (k KeepList) IsAll() bool { return k.kind == keepAll }

// IsList reports whether the value is a sequence, including an empty one.
func (k KeepList) IsList() bool { return k.kind == keepItems }

// Items returns a copy of the names. It is nil unless IsList is true.
func (k KeepList) Items() []string {
	if k.kind != keepItems {
		return nil
	}
	return append([]string{}, k.items...)
}

// Len returns the number of names in the list.
func (k KeepList) Len() int { return len(k.items) }

// Set returns the names as a lookup set.
func (k KeepList) Set() map[string]struct{} {
	set := make(map[string]struct{}, len(k.items))
	for _, item := range k.items {
		set[item] = struct{}{}
	}
	return set
}

// String renders the KeepList for logs and plans.
func (k KeepList) String() string {
	switch k.kind {
	case keepAll:
		return AllSentinel
	case keepNotList:
		return "<not a list>"
	case keepItems:
		return "[" + joinQuoted(k.items) + "]"
	default:
		return "<absent>"
	}
}

func joinQuoted(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = strconv.Quote(item)
	}
	return strings.Join(quoted, ", ")
}
