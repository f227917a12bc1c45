package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/vitals/ecs/component"
	"github.com/milk9111/vitals/health"
)

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func toSet(ents []Entity) map[Entity]struct{} {
	m := make(map[Entity]struct{}, len(ents))
	for _, e := range ents {
		m[e] = struct{}{}
	}
	return m
}

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			require.Len(t, Entities(w), c.create)
			if c.destroyIndex < 0 {
				return
			}
			require.True(t, DestroyEntity(w, ents[c.destroyIndex]))
			assert.False(t, IsAlive(w, ents[c.destroyIndex]))
			assert.False(t, DestroyEntity(w, ents[c.destroyIndex]), "double destroy")
			assert.Len(t, Entities(w), c.create-1)
		})
	}
}

func TestRecycledIDGetsNewGeneration(t *testing.T) {
	w := NewWorld()
	old := CreateEntity(w)
	require.True(t, DestroyEntity(w, old))

	fresh := CreateEntity(w)
	assert.Equal(t, old.id(), fresh.id())
	assert.NotEqual(t, old, fresh)
	assert.False(t, IsAlive(w, old))
	assert.True(t, IsAlive(w, fresh))
}

func TestActorRefRoundTrip(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)
	assert.Equal(t, e, EntityFromActor(e.ActorRef()))
	assert.False(t, EntityFromActor(health.NoActor).Valid())
}

func TestComponents(t *testing.T) {
	w := NewWorld()
	ints := component.NewComponent[int]()
	strs := component.NewComponent[string]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)

	tests := []struct {
		name  string
		setup func() error
		check func(t *testing.T)
	}{
		{
			name:  "add_and_get",
			setup: func() error { return Add(w, e1, ints.Kind(), intPtr(10)) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, ints.Kind())
				require.True(t, ok)
				assert.Equal(t, 10, *v)
			},
		},
		{
			name: "replace_keeps_single_value",
			setup: func() error {
				return Add(w, e1, ints.Kind(), intPtr(11))
			},
			check: func(t *testing.T) {
				v, _ := Get(w, e1, ints.Kind())
				assert.Equal(t, 11, *v)
				assert.Equal(t, 1, w.store(ints.Kind().ID(), false).Len())
			},
		},
		{
			name: "two_entities",
			setup: func() error {
				if err := Add(w, e1, strs.Kind(), stringPtr("a")); err != nil {
					return err
				}
				return Add(w, e2, strs.Kind(), stringPtr("b"))
			},
			check: func(t *testing.T) {
				assert.True(t, Has(w, e1, strs.Kind()))
				assert.True(t, Has(w, e2, strs.Kind()))
				assert.False(t, Has(w, e2, ints.Kind()))
			},
		},
		{
			name:  "remove",
			setup: func() error { return nil },
			check: func(t *testing.T) {
				assert.True(t, Remove(w, e1, strs.Kind()))
				assert.False(t, Remove(w, e1, strs.Kind()))
				v, ok := Get(w, e2, strs.Kind())
				require.True(t, ok, "swap-remove must keep the other entity")
				assert.Equal(t, "b", *v)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, tc.setup())
			tc.check(t)
		})
	}
}

func TestAddErrors(t *testing.T) {
	w := NewWorld()
	kind := component.NewComponentKind[int]()
	e := CreateEntity(w)
	dead := CreateEntity(w)
	DestroyEntity(w, dead)

	assert.ErrorIs(t, Add(w, e, kind, nil), component.ErrNilComponent)
	assert.ErrorIs(t, Add(w, dead, kind, intPtr(1)), component.ErrEntityNotAlive)
	assert.ErrorIs(t, Add(w, e, component.ComponentKind[int]{}, intPtr(1)), component.ErrInvalidComponentKind)
}

func TestDestroyRemovesComponentsAndRunsHooks(t *testing.T) {
	w := NewWorld()
	kind := component.NewComponentKind[int]()
	e := CreateEntity(w)
	require.NoError(t, Add(w, e, kind, intPtr(3)))

	var hooked []Entity
	w.OnDestroy(func(d Entity) {
		_, ok := Get(w, d, kind)
		assert.True(t, ok, "hook runs before components are removed")
		hooked = append(hooked, d)
	})

	require.True(t, DestroyEntity(w, e))
	assert.Equal(t, []Entity{e}, hooked)
	_, ok := First(w, kind)
	assert.False(t, ok)
}

func TestForEach(t *testing.T) {
	w := NewWorld()
	kind := component.NewComponentKind[int]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)
	require.NoError(t, Add(w, e1, kind, intPtr(1)))
	require.NoError(t, Add(w, e3, kind, intPtr(3)))

	var ents []Entity
	ForEach(w, kind, func(e Entity, _ *int) { ents = append(ents, e) })
	set := toSet(ents)
	assert.Contains(t, set, e1)
	assert.Contains(t, set, e3)
	assert.NotContains(t, set, e2)
}

func TestForEachToleratesDestroyDuringIteration(t *testing.T) {
	w := NewWorld()
	kind := component.NewComponentKind[int]()
	for i := 0; i < 4; i++ {
		require.NoError(t, Add(w, CreateEntity(w), kind, intPtr(i)))
	}

	seen := 0
	ForEach(w, kind, func(e Entity, _ *int) {
		seen++
		DestroyEntity(w, e)
	})
	assert.Equal(t, 4, seen)
	assert.Empty(t, Entities(w))
}

func TestMultiKindIteration(t *testing.T) {
	ka := component.NewComponentKind[int]()
	kb := component.NewComponentKind[int]()
	kc := component.NewComponentKind[int]()
	kd := component.NewComponentKind[int]()

	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "intersection",
			run: func(t *testing.T) {
				w := NewWorld()
				e1, e2, e3 := CreateEntity(w), CreateEntity(w), CreateEntity(w)
				require.NoError(t, Add(w, e1, ka, intPtr(1)))
				for _, k := range []component.ComponentKind[int]{ka, kb, kc, kd} {
					require.NoError(t, Add(w, e2, k, intPtr(2)))
				}
				require.NoError(t, Add(w, e3, kb, intPtr(3)))

				var res2, res3 []Entity
				ForEach2(w, ka, kb, func(e Entity, _, _ *int) { res2 = append(res2, e) })
				ForEach3(w, ka, kb, kc, func(e Entity, _, _, _ *int) { res3 = append(res3, e) })
				assert.Equal(t, []Entity{e2}, res2)
				assert.Equal(t, []Entity{e2}, res3)
			},
		},
		{
			name: "ignores_dead_entities",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)
				require.NoError(t, Add(w, e, ka, intPtr(1)))
				require.NoError(t, Add(w, e, kb, intPtr(2)))
				require.True(t, DestroyEntity(w, e))

				var res []Entity
				ForEach2(w, ka, kb, func(e Entity, _, _ *int) { res = append(res, e) })
				assert.Empty(t, res)
			},
		},
		{
			name: "missing_store_returns_nil",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)
				require.NoError(t, Add(w, e, ka, intPtr(1)))
				assert.Nil(t, Query(w, ka, kb))
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, tc.run)
	}
}
