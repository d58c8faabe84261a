package ranker

import "github.com/dimtools/armortrim/pkg/armor"

// Buckets groups expanded records by slot. Records whose Type is not one of
// armor.Slots land in Unslotted and are never ranked or trimmed.
type Buckets struct {
	BySlot    map[string][]armor.Item
	Unslotted []armor.Item
}

// Partition splits items by exact Type match, keeping input order inside each
// bucket.
func Partition(items []armor.Item) Buckets {
	b := Buckets{BySlot: make(map[string][]armor.Item, len(armor.Slots))}
	for _, slot := range armor.Slots {
		b.BySlot[slot] = nil
	}
	for _, it := range items {
		if _, ok := b.BySlot[it.Type]; !ok {
			b.Unslotted = append(b.Unslotted, it)
			continue
		}
		b.BySlot[it.Type] = append(b.BySlot[it.Type], it)
	}
	return b
}

// Counts returns the number of records per slot.
func (b Buckets) Counts() map[string]int {
	out := make(map[string]int, len(b.BySlot))
	for slot, items := range b.BySlot {
		out[slot] = len(items)
	}
	return out
}

// Slotted returns every ranked record in slot order.
func (b Buckets) Slotted() []armor.Item {
	var out []armor.Item
	for _, slot := range armor.Slots {
		out = append(out, b.BySlot[slot]...)
	}
	return out
}
