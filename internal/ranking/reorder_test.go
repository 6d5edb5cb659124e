package ranking

import "testing"

func TestRemoveID(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
		id   string
		want []string
	}{
		{"middle", []string{"a", "b", "c"}, "b", []string{"a", "c"}},
		{"first", []string{"a", "b"}, "a", []string{"b"}},
		{"absent", []string{"a", "b"}, "x", []string{"a", "b"}},
		{"empty", []string{}, "a", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := removeID(tt.ids, tt.id)
			if len(got) != len(tt.want) {
				t.Fatalf("removeID = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("removeID = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestInsertAt(t *testing.T) {
	tests := []struct {
		name  string
		ids   []string
		id    string
		index int
		want  []string
	}{
		{"front", []string{"a", "b"}, "x", 0, []string{"x", "a", "b"}},
		{"middle", []string{"a", "b"}, "x", 1, []string{"a", "x", "b"}},
		{"end", []string{"a", "b"}, "x", 2, []string{"a", "b", "x"}},
		{"beyond end clamps", []string{"a", "b"}, "x", 99, []string{"a", "b", "x"}},
		{"negative clamps", []string{"a", "b"}, "x", -1, []string{"x", "a", "b"}},
		{"into empty", []string{}, "x", 5, []string{"x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := insertAt(tt.ids, tt.id, tt.index)
			if len(got) != len(tt.want) {
				t.Fatalf("insertAt = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("insertAt = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestInsertAtDoesNotMutateInput(t *testing.T) {
	ids := []string{"a", "b", "c"}
	_ = insertAt(ids, "x", 1)
	if ids[1] != "b" {
		t.Fatal("insertAt mutated its input slice")
	}
}
