package uid

import (
	"strings"
	"testing"
	"time"
)

func TestUID_LengthAndAlphabet(t *testing.T) {
	for _, size := range []int{1, 10, 24} {
		id := UID(size)
		if len(id) != size {
			t.Fatalf("UID(%d) length = %d", size, len(id))
		}
		for _, c := range id {
			if !strings.ContainsRune(letters, c) {
				t.Fatalf("UID contains invalid char %q", c)
			}
		}
	}
}

func TestUID_Unique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id := UID(10)
		if seen[id] {
			t.Fatalf("duplicate UID %q", id)
		}
		seen[id] = true
	}
}

func TestULID_SortableByTime(t *testing.T) {
	earlier := ULIDAt(time.Unix(1000, 0))
	later := ULIDAt(time.Unix(2000, 0))
	if len(earlier) != 26 || len(later) != 26 {
		t.Fatalf("unexpected ULID lengths %d, %d", len(earlier), len(later))
	}
	if !(earlier[:10] < later[:10]) {
		t.Fatalf("ULID time prefixes not ordered: %q vs %q", earlier[:10], later[:10])
	}
}
