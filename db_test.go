package vcd_test

import (
	"math/rand"
	"testing"

	"github.com/db47h/vcd"
	"github.com/db47h/vcd/vcdtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDB_ordering(t *testing.T) {
	sources := vcd.NewSourceRegistry()
	descs := vcd.NewDescriptorRegistry(sources)
	db := vcd.NewDB(vcd.Nanoseconds, sources)

	rnd := rand.New(rand.NewSource(1))
	type key struct {
		ts  uint64
		seq uint64
	}
	var added []key
	for i := 0; i < 500; i++ {
		ts := uint64(rnd.Intn(20))
		// the value carries the insertion sequence number
		s, err := vcdtest.Signal(sources, descs, vcdtest.W(ts, "Top.S", 16, uint64(i)))
		require.NoError(t, err)
		require.NoError(t, db.Add(s))
		added = append(added, key{ts, uint64(i)})
	}

	signals := db.Signals()
	require.Len(t, signals, len(added))
	for i := 1; i < len(signals); i++ {
		p, c := signals[i-1], signals[i]
		require.LessOrEqual(t, p.Timestamp(), c.Timestamp())
		if p.Timestamp() == c.Timestamp() {
			require.Less(t, p.Value(), c.Value(), "insertion order not preserved at ts %d", c.Timestamp())
		}
	}
}

func TestDB_sameTimestampDifferentNames(t *testing.T) {
	db := vcdtest.NewDB(t, vcd.Microseconds,
		vcdtest.W(5, "Top.B", 4, 1),
		vcdtest.W(5, "Top.A", 4, 2),
		vcdtest.W(1, "Top.A", 4, 3),
	)
	signals := db.Signals()
	require.Len(t, signals, 3)
	assert.Equal(t, "Top.A", signals[0].Name())
	assert.Equal(t, "Top.B", signals[1].Name())
	assert.Equal(t, "Top.A", signals[2].Name())
	assert.Equal(t, uint64(2), signals[2].Value())
}

func TestDB_footprint(t *testing.T) {
	db := vcdtest.NewDB(t, vcd.Microseconds,
		vcdtest.W(10, "Top.Z", 4, 1),
		vcdtest.W(0, "Top.A.X", 4, 2),
		vcdtest.R(3, "Top.A.T", "1.5"),
		vcdtest.W(1, "Top.Z", 4, 9),
	)
	fp := db.Footprint()
	require.Len(t, fp, 3)
	assert.Equal(t, "Top.A.T", fp[0].Name())
	assert.Equal(t, "Top.A.X", fp[1].Name())
	assert.Equal(t, "Top.Z", fp[2].Name())
	// newest wins
	assert.Equal(t, uint64(9), fp[2].Value())
	assert.Equal(t, vcd.Microseconds, db.TimeUnit())
	assert.Equal(t, 4, db.Len())
}

func TestDB_inconsistent(t *testing.T) {
	variants := []struct {
		typ  string
		size uint
		src  string
	}{
		{vcd.TypeWire, 8, "S1"},
		{vcd.TypeWire, 8, "S2"},
		{vcd.TypeWire, 4, "S1"},
		{vcd.TypeReal, 64, "S1"},
	}
	for i, a := range variants {
		for j, b := range variants {
			sources := vcd.NewSourceRegistry()
			db := vcd.NewDB(vcd.Microseconds, sources)
			// separate descriptor registries so that the check happens in the DB
			sa := mustSignal(t, sources, vcd.NewDescriptorRegistry(sources), "Top.Sig1", a.typ, a.size, a.src)
			sb := mustSignal(t, sources, vcd.NewDescriptorRegistry(sources), "Top.Sig1", b.typ, b.size, b.src)
			require.NoError(t, db.Add(sa))
			err := db.Add(sb)
			if i == j {
				assert.NoError(t, err)
				continue
			}
			require.Error(t, err)
			require.True(t, vcd.IsInconsistent(err))
			var e *vcd.InconsistentSignalError
			require.ErrorAs(t, err, &e)
			assert.Equal(t, "Top.Sig1", e.Name)
			assert.Equal(t, a.src, e.PrevSource)
			assert.Equal(t, b.src, e.Source)
			assert.Contains(t, err.Error(), a.src+" and "+b.src)
		}
	}
}

func TestDB_noSource(t *testing.T) {
	sources := vcd.NewSourceRegistry()
	db := vcd.NewDB(vcd.Microseconds, sources)
	d, err := vcd.NewDescriptorRegistry(sources).Register("Top.X", vcd.TypeWire, 1, vcd.NoSource)
	require.NoError(t, err)
	s, err := vcd.NewInteger(d, 0, 1)
	require.NoError(t, err)
	assert.ErrorIs(t, db.Add(s), vcd.ErrInvalidSource)
	assert.ErrorIs(t, db.Add(vcd.Signal{}), vcd.ErrInvalidSignal)
	assert.Equal(t, 0, db.Len())
}

func mustSignal(t *testing.T, sources *vcd.SourceRegistry, descs *vcd.DescriptorRegistry, name, typ string, size uint, src string) vcd.Signal {
	t.Helper()
	r := vcdtest.Row{Name: name, Type: typ, Size: size, Source: src, Value: "0"}
	if typ == vcd.TypeReal {
		r.Value = "0.0"
	}
	s, err := vcdtest.Signal(sources, descs, r)
	require.NoError(t, err)
	return s
}
