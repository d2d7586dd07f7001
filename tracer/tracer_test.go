package tracer_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/db47h/vcd"
	"github.com/db47h/vcd/tracer"
	"github.com/db47h/vcd/vcdtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracer_dump(t *testing.T) {
	db := vcdtest.NewDB(t, vcd.Microseconds,
		vcdtest.W(0, "Top.Sig1", 8, 201),
		vcdtest.R(0, "Top.Temp", "1.5"),
		vcdtest.E(5, "Top.Clk"),
		vcdtest.W(5, "Top.Sig1", 8, 201),
		vcdtest.W(10, "Top.Sig1", 8, 7),
		vcdtest.R(10, "Top.Temp", "1.50"),
		vcdtest.E(10, "Top.Clk"),
	)
	exp := `$date December 8, 2014 14:15:00
$end
$version VCD Tracer "Nestor" Release v.3.0.2
$end
$timescale 1 us
$end
$scope module Top $end
	$var event 1 Top.Clk Clk $end
	$var wire 8 Top.Sig1 Sig1 $end
	$var real 64 Top.Temp Temp $end
$upscope $end
$dumpvars
bxxxxxxxx Top.Sig1
r0.0 Top.Temp
$end
#0
b11001001 Top.Sig1
r1.5 Top.Temp
#5
1Top.Clk
#10
1Top.Clk
b00000111 Top.Sig1
`
	assert.Equal(t, exp, vcdtest.Dump(t, db))
}

func TestTracer_structure(t *testing.T) {
	data := []struct {
		names []string
		exp   []string
	}{
		{
			[]string{"Top.B.Z", "Top.A.Y", "Top.A.X"},
			[]string{
				"$scope module Top $end",
				"\t$scope module A $end",
				"\t\t$var wire 1 Top.A.X X $end",
				"\t\t$var wire 1 Top.A.Y Y $end",
				"\t$upscope $end",
				"\t$scope module B $end",
				"\t\t$var wire 1 Top.B.Z Z $end",
				"\t$upscope $end",
				"$upscope $end",
			},
		},
		{
			[]string{"Clk", "Top.A.B.C", "Top.X"},
			[]string{
				"$var wire 1 Clk Clk $end",
				"$scope module Top $end",
				"\t$scope module A $end",
				"\t\t$scope module B $end",
				"\t\t\t$var wire 1 Top.A.B.C C $end",
				"\t\t$upscope $end",
				"\t$upscope $end",
				"\t$var wire 1 Top.X X $end",
				"$upscope $end",
			},
		},
		{
			// a name that is both a variable and a scope
			[]string{"A.B", "A.B.C"},
			[]string{
				"$scope module A $end",
				"\t$var wire 1 A.B B $end",
				"\t$scope module B $end",
				"\t\t$var wire 1 A.B.C C $end",
				"\t$upscope $end",
				"$upscope $end",
			},
		},
		{
			[]string{"X.Y", "Z.Y"},
			[]string{
				"$scope module X $end",
				"\t$var wire 1 X.Y Y $end",
				"$upscope $end",
				"$scope module Z $end",
				"\t$var wire 1 Z.Y Y $end",
				"$upscope $end",
			},
		},
	}
	for _, d := range data {
		var rows []vcdtest.Row
		for _, n := range d.names {
			rows = append(rows, vcdtest.W(0, n, 1, 0))
		}
		out := vcdtest.Dump(t, vcdtest.NewDB(t, vcd.Nanoseconds, rows...))
		got := vcdtest.Structure(out)
		assert.Equal(t, d.exp, got, "names: %v", d.names)

		var open, closed int
		for _, l := range got {
			switch {
			case strings.Contains(l, "$scope"):
				open++
			case strings.Contains(l, "$upscope"):
				closed++
			}
		}
		assert.Equal(t, open, closed, "unbalanced scopes for %v", d.names)
	}
}

func TestTracer_changeSuppression(t *testing.T) {
	count := func(body []string, line string) int {
		n := 0
		for _, l := range body {
			if l == line {
				n++
			}
		}
		return n
	}

	_, body := vcdtest.Sections(vcdtest.Dump(t, vcdtest.NewDB(t, vcd.Milliseconds,
		vcdtest.W(1, "A", 8, 5),
		vcdtest.W(2, "A", 8, 5),
	)))
	assert.Equal(t, []string{"#1", "b00000101 A"}, body)

	_, body = vcdtest.Sections(vcdtest.Dump(t, vcdtest.NewDB(t, vcd.Milliseconds,
		vcdtest.W(1, "A", 8, 5),
		vcdtest.W(2, "A", 8, 7),
	)))
	assert.Equal(t, 1, count(body, "b00000101 A"))
	assert.Equal(t, 1, count(body, "b00000111 A"))

	// back to a previous value is a change
	_, body = vcdtest.Sections(vcdtest.Dump(t, vcdtest.NewDB(t, vcd.Milliseconds,
		vcdtest.W(1, "A", 8, 5),
		vcdtest.W(2, "A", 8, 7),
		vcdtest.W(3, "A", 8, 5),
	)))
	assert.Equal(t, 2, count(body, "b00000101 A"))

	// events are never suppressed
	_, body = vcdtest.Sections(vcdtest.Dump(t, vcdtest.NewDB(t, vcd.Milliseconds,
		vcdtest.E(1, "Ev"),
		vcdtest.E(2, "Ev"),
		vcdtest.E(2, "Ev"),
	)))
	assert.Equal(t, []string{"#1", "1Ev", "#2", "1Ev"}, body)
}

func TestTracer_emptyDB(t *testing.T) {
	out := vcdtest.Dump(t, vcdtest.NewDB(t, vcd.Seconds))
	header, body := vcdtest.Sections(out)
	assert.Empty(t, body)
	assert.Equal(t, []string{"$dumpvars", "$end"}, header[len(header)-2:])
	assert.Contains(t, out, "$timescale 1 s\n")
}

func TestTracer_options(t *testing.T) {
	db := vcdtest.NewDB(t, vcd.Picoseconds, vcdtest.W(3, "A", 2, 3))
	out := vcdtest.Dump(t, db, tracer.WithDate("today"), tracer.WithLogger(nil))
	assert.True(t, strings.HasPrefix(out, "$date today\n$end\n"))
}

func TestTracer_singleShot(t *testing.T) {
	var b strings.Builder
	tr := tracer.New(&b, vcdtest.NewDB(t, vcd.Microseconds, vcdtest.W(0, "A", 1, 1)))
	require.NoError(t, tr.Dump())
	assert.ErrorIs(t, tr.Dump(), tracer.ErrAlreadyDumped)
	require.NoError(t, tr.Close())
}

func TestTracer_create(t *testing.T) {
	db := vcdtest.NewDB(t, vcd.Microseconds, vcdtest.W(0, "A", 1, 1))

	_, err := tracer.Create(filepath.Join(t.TempDir(), "missing", "out.vcd"), db)
	assert.ErrorIs(t, err, tracer.ErrCannotOpenFile)

	path := filepath.Join(t.TempDir(), "out.vcd")
	tr, err := tracer.Create(path, db)
	require.NoError(t, err)
	require.NoError(t, tr.Dump())
	require.NoError(t, tr.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, vcdtest.Dump(t, db), string(data))
}
