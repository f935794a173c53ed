package registry

import (
	"errors"
	"testing"
)

func echoFunc(input string, _ Options) (string, error) {
	return input, nil
}

func testDescriptor(id string, cat Category) Descriptor {
	return Descriptor{
		ID:            id,
		Category:      cat,
		DisplayName:   "Test " + id,
		RequiresInput: true,
		Run:           echoFunc,
	}
}

func TestRegisterLookup_RoundTrip(t *testing.T) {
	reg := New()

	d := testDescriptor("echo", CategoryText)
	if err := reg.Register(d); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	got, err := reg.Lookup("echo")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if got.ID != d.ID || got.DisplayName != d.DisplayName || got.Category != d.Category {
		t.Errorf("descriptor mismatch: got %+v, want %+v", got, d)
	}
	if got.Run == nil {
		t.Fatal("expected run function to survive round trip")
	}
	out, err := got.Run("hello", nil)
	if err != nil || out != "hello" {
		t.Errorf("run function mismatch: got (%q, %v)", out, err)
	}
}

func TestRegister_Duplicate(t *testing.T) {
	reg := New()

	first := testDescriptor("dup", CategoryText)
	first.DisplayName = "Original"
	if err := reg.Register(first); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	second := testDescriptor("dup", CategoryEncoding)
	second.DisplayName = "Impostor"
	err := reg.Register(second)
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}

	// The existing entry must be untouched.
	got, err := reg.Lookup("dup")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if got.DisplayName != "Original" {
		t.Errorf("duplicate register mutated entry: got %q", got.DisplayName)
	}
	if got.Category != CategoryText {
		t.Errorf("duplicate register mutated category: got %q", got.Category)
	}
	if reg.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", reg.Len())
	}
}

func TestRegister_Invalid(t *testing.T) {
	reg := New()

	if err := reg.Register(Descriptor{ID: "", Run: echoFunc}); !errors.Is(err, ErrInvalidTool) {
		t.Errorf("expected ErrInvalidTool for empty id, got %v", err)
	}
	if err := reg.Register(Descriptor{ID: "no-body"}); !errors.Is(err, ErrInvalidTool) {
		t.Errorf("expected ErrInvalidTool for nil run, got %v", err)
	}
	if reg.Len() != 0 {
		t.Errorf("invalid registrations must not be stored, got %d entries", reg.Len())
	}
}

func TestLookup_NotFound(t *testing.T) {
	reg := New()

	_, err := reg.Lookup("not-a-tool")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListByCategory_RegistrationOrder(t *testing.T) {
	reg := New()

	ids := []string{"c", "a", "b"}
	for _, id := range ids {
		if err := reg.Register(testDescriptor(id, CategoryText)); err != nil {
			t.Fatalf("register %s failed: %v", id, err)
		}
	}
	if err := reg.Register(testDescriptor("other", CategoryEncoding)); err != nil {
		t.Fatalf("register other failed: %v", err)
	}

	var got []string
	for d := range reg.ListByCategory(CategoryText) {
		got = append(got, d.ID)
	}

	if len(got) != len(ids) {
		t.Fatalf("expected %d descriptors, got %d", len(ids), len(got))
	}
	for i, id := range ids {
		if got[i] != id {
			t.Errorf("position %d: expected %s, got %s", i, id, got[i])
		}
	}
}

func TestListByCategory_Restartable(t *testing.T) {
	reg := New()
	for _, id := range []string{"one", "two"} {
		if err := reg.Register(testDescriptor(id, CategoryTime)); err != nil {
			t.Fatalf("register failed: %v", err)
		}
	}

	seq := reg.ListByCategory(CategoryTime)

	count := func() int {
		n := 0
		for range seq {
			n++
		}
		return n
	}

	if first, second := count(), count(); first != 2 || second != 2 {
		t.Errorf("sequence not restartable: first pass %d, second pass %d", first, second)
	}
}

func TestListByCategory_EarlyStop(t *testing.T) {
	reg := New()
	for _, id := range []string{"one", "two", "three"} {
		if err := reg.Register(testDescriptor(id, CategoryText)); err != nil {
			t.Fatalf("register failed: %v", err)
		}
	}

	var got []string
	for d := range reg.ListByCategory(CategoryText) {
		got = append(got, d.ID)
		if len(got) == 1 {
			break
		}
	}
	if len(got) != 1 || got[0] != "one" {
		t.Errorf("early stop mismatch: got %v", got)
	}
}

func TestList_All(t *testing.T) {
	reg := New()
	if err := reg.Register(testDescriptor("x", CategoryText)); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := reg.Register(testDescriptor("y", CategoryEncoding)); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	n := 0
	for range reg.List() {
		n++
	}
	if n != 2 {
		t.Errorf("expected 2 descriptors, got %d", n)
	}
}

func TestFreeze(t *testing.T) {
	reg := New()
	if err := reg.Register(testDescriptor("before", CategoryText)); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	reg.Freeze()

	err := reg.Register(testDescriptor("after", CategoryText))
	if !errors.Is(err, ErrRegistryFrozen) {
		t.Fatalf("expected ErrRegistryFrozen, got %v", err)
	}

	// Lookup still works after freezing.
	if _, err := reg.Lookup("before"); err != nil {
		t.Errorf("lookup after freeze failed: %v", err)
	}
}
