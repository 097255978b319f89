package gate

import "testing"

func TestBuilder_NewInputNeverDedups(t *testing.T) {
	b := NewBuilder()
	i0 := b.NewInput(0)
	i1 := b.NewInput(0)
	if i0 == i1 {
		t.Fatalf("two NewInput(0) calls returned the same index %d", i0)
	}
	if b.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", b.Len())
	}
}

func TestBuilder_NewOpDedupsStructurally(t *testing.T) {
	b := NewBuilder()
	a := b.NewInput(0)
	c := b.NewInput(1)

	add1 := b.NewOp(Add, a, c)
	add2 := b.NewOp(Add, a, c)
	if add1 != add2 {
		t.Fatalf("identical (Add,a,c) built two gates: %d, %d", add1, add2)
	}

	mul := b.NewOp(Multiply, a, c)
	if mul == add1 {
		t.Fatalf("Add and Multiply over the same children shared a gate")
	}

	swapped := b.NewOp(Add, c, a)
	if swapped == add1 {
		t.Fatalf("(Add,c,a) should not dedup against (Add,a,c): CSE key is order-sensitive")
	}
}

func TestBuilder_RelocateInput(t *testing.T) {
	b := NewBuilder()
	idx := b.NewInput(0)
	b.RelocateInput(idx, 7)
	if b.Gates()[idx].In != 7 {
		t.Fatalf("RelocateInput did not update In: got %d, want 7", b.Gates()[idx].In)
	}
}

func TestBuilder_RelocateNonInputPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic relocating a non-input gate")
		}
	}()
	b := NewBuilder()
	a := b.NewInput(0)
	c := b.NewInput(1)
	op := b.NewOp(Add, a, c)
	b.RelocateInput(op, 1)
}
