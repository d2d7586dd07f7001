package txtlog

import (
	"slices"
	"strings"

	"github.com/db47h/vcd"
	"go.uber.org/zap"
)

// Line counter signal names and size.
//
const (
	DefaultTopModule = "Top"
	CounterLow       = "Low"
	CounterHigh      = "High"
	CounterSize      = 32
)

type lineRange struct {
	low, high int
}

// lineCounter records, for every timestamp, the lowest and highest log line
// numbers that produced a signal at that timestamp.
//
type lineCounter struct {
	name string
	m    map[uint64]*lineRange
}

func newLineCounter(name string) *lineCounter {
	return &lineCounter{name: counterName(name), m: make(map[uint64]*lineRange)}
}

// counterName puts the counter in the Top module if the given name has no
// scope.
//
func counterName(name string) string {
	switch i := strings.Index(name, vcd.NameDelim); {
	case i < 0:
		return DefaultTopModule + vcd.NameDelim + name
	case i == 0:
		return DefaultTopModule + name
	}
	return name
}

func (c *lineCounter) update(ts uint64, line int) {
	r, ok := c.m[ts]
	if !ok {
		c.m[ts] = &lineRange{line, line}
		return
	}
	if line > r.high {
		r.high = line
	}
	if line < r.low {
		r.low = line
	}
}

// record adds the counter signals to db in timestamp order.
//
func (c *lineCounter) record(db *vcd.DB, descs *vcd.DescriptorRegistry, src vcd.SourceHandle, log *zap.Logger) error {
	lo, err := descs.Register(c.name+vcd.NameDelim+CounterLow, vcd.TypeWire, CounterSize, src)
	if err != nil {
		return err
	}
	hi, err := descs.Register(c.name+vcd.NameDelim+CounterHigh, vcd.TypeWire, CounterSize, src)
	if err != nil {
		return err
	}

	ts := make([]uint64, 0, len(c.m))
	for k := range c.m {
		ts = append(ts, k)
	}
	slices.Sort(ts)

	for _, t := range ts {
		r := c.m[t]
		for _, p := range [...]struct {
			d *vcd.Descriptor
			v int
		}{{lo, r.low}, {hi, r.high}} {
			s, err := vcd.NewInteger(p.d, t, uint64(p.v))
			if err != nil {
				log.Warn("line counter value dropped", zap.Uint64("timestamp", t), zap.Error(err))
				continue
			}
			if err = db.Add(s); err != nil {
				return err
			}
		}
	}
	return nil
}
