package ordering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/mesh-intelligence/atlas/pkg/uid"
)

func mintN(n int) []uid.UID {
	ids := make([]uid.UID, n)
	for i := range ids {
		ids[i] = uid.New()
	}
	return ids
}

func listOf(t *testing.T, ids []uid.UID) *List {
	t.Helper()
	var l List
	for _, id := range ids {
		require.True(t, l.Append(id))
	}
	return &l
}

func TestAppendKeepsInsertionOrder(t *testing.T) {
	ids := mintN(5)
	l := listOf(t, ids)

	assert.Equal(t, ids, l.UIDs())
	assert.Equal(t, 5, l.Len())
}

func TestAppendRejectsDuplicatesAndNil(t *testing.T) {
	ids := mintN(2)
	l := listOf(t, ids)

	assert.False(t, l.Append(ids[0]))
	assert.False(t, l.Append(uid.Nil))
	assert.Equal(t, ids, l.UIDs())
}

func TestRemovePreservesRelativeOrder(t *testing.T) {
	tests := []struct {
		name   string
		remove int
	}{
		{name: "first", remove: 0},
		{name: "middle", remove: 2},
		{name: "last", remove: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := mintN(5)
			l := listOf(t, ids)

			require.True(t, l.Remove(ids[tt.remove]))

			want := append(append([]uid.UID{}, ids[:tt.remove]...), ids[tt.remove+1:]...)
			assert.Equal(t, want, l.UIDs())
			assert.False(t, l.Remove(ids[tt.remove]), "second remove reports absence")
		})
	}
}

func TestReplace(t *testing.T) {
	ids := mintN(3)
	stranger := uid.New()

	tests := []struct {
		name string
		next []uid.UID
		want bool
	}{
		{name: "reversed permutation", next: []uid.UID{ids[2], ids[1], ids[0]}, want: true},
		{name: "identity", next: []uid.UID{ids[0], ids[1], ids[2]}, want: true},
		{name: "missing one", next: []uid.UID{ids[0], ids[1]}, want: false},
		{name: "duplicate replaces a member", next: []uid.UID{ids[0], ids[0], ids[1]}, want: false},
		{name: "extra member", next: []uid.UID{ids[0], ids[1], ids[2], stranger}, want: false},
		{name: "foreign member", next: []uid.UID{ids[0], ids[1], stranger}, want: false},
		{name: "empty", next: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := listOf(t, ids)
			got := l.Replace(tt.next)

			assert.Equal(t, tt.want, got)
			if tt.want {
				assert.Equal(t, tt.next, l.UIDs())
			} else {
				assert.Equal(t, ids, l.UIDs(), "rejected replacement must leave the order untouched")
			}
		})
	}
}

func TestReplaceCopiesInput(t *testing.T) {
	ids := mintN(2)
	l := listOf(t, ids)
	next := []uid.UID{ids[1], ids[0]}
	require.True(t, l.Replace(next))

	next[0] = uid.New()
	assert.Equal(t, []uid.UID{ids[1], ids[0]}, l.UIDs())
}

func TestIndexAndAt(t *testing.T) {
	ids := mintN(3)
	l := listOf(t, ids)

	for i, id := range ids {
		got, ok := l.Index(id)
		assert.True(t, ok)
		assert.Equal(t, i, got)

		at, ok := l.At(i)
		assert.True(t, ok)
		assert.Equal(t, id, at)
	}

	_, ok := l.Index(uid.New())
	assert.False(t, ok)
	_, ok = l.At(-1)
	assert.False(t, ok)
	_, ok = l.At(3)
	assert.False(t, ok)
}

func TestMoves(t *testing.T) {
	ids := mintN(4)
	a, b, c, d := ids[0], ids[1], ids[2], ids[3]

	tests := []struct {
		name string
		move func(l *List) bool
		want []uid.UID
	}{
		{name: "backward", move: func(l *List) bool { return l.MoveBackward(c) }, want: []uid.UID{a, c, b, d}},
		{name: "backward at front", move: func(l *List) bool { return l.MoveBackward(a) }, want: []uid.UID{a, b, c, d}},
		{name: "forward", move: func(l *List) bool { return l.MoveForward(b) }, want: []uid.UID{a, c, b, d}},
		{name: "forward at end", move: func(l *List) bool { return l.MoveForward(d) }, want: []uid.UID{a, b, c, d}},
		{name: "to back", move: func(l *List) bool { return l.MoveToBack(c) }, want: []uid.UID{c, a, b, d}},
		{name: "to front", move: func(l *List) bool { return l.MoveToFront(b) }, want: []uid.UID{a, c, d, b}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := listOf(t, ids)
			assert.True(t, tt.move(l))
			assert.Equal(t, tt.want, l.UIDs())
		})
	}

	l := listOf(t, ids)
	stranger := uid.New()
	assert.False(t, l.MoveBackward(stranger))
	assert.False(t, l.MoveForward(stranger))
	assert.False(t, l.MoveToBack(stranger))
	assert.False(t, l.MoveToFront(stranger))
	assert.Equal(t, ids, l.UIDs())
}

func TestProperty_ListStaysDuplicateFree(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		pool := mintN(8)
		var l List
		model := []uid.UID{}

		steps := rapid.IntRange(1, 60).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			id := pool[rapid.IntRange(0, len(pool)-1).Draw(rt, "id")]
			switch rapid.IntRange(0, 3).Draw(rt, "op") {
			case 0:
				if l.Append(id) {
					model = append(model, id)
				}
			case 1:
				if l.Remove(id) {
					for j, m := range model {
						if m == id {
							model = append(model[:j], model[j+1:]...)
							break
						}
					}
				}
			case 2:
				l.MoveToFront(id)
				model = l.UIDs()
			case 3:
				perm := rapid.Permutation(l.UIDs()).Draw(rt, "perm")
				require.True(rt, l.Replace(perm))
				model = perm
			}

			got := l.UIDs()
			require.Equal(rt, len(model), len(got))
			require.ElementsMatch(rt, model, got)
			seen := make(map[uid.UID]bool)
			for _, g := range got {
				require.False(rt, seen[g], "duplicate %s", g)
				seen[g] = true
			}
		}
	})
}
