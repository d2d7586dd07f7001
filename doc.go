/*
Package vcd provides the signal model and the signal database used to build
Value Change Dump (VCD) waveform files from timestamped log observations.

Observations are Signal values of one of three kinds: Integer (bit vectors of up
to 64 bits), Real and Event. Each Signal refers to a shared, immutable Descriptor
obtained from a DescriptorRegistry, which guarantees that every observation of a
given name agrees on type, size and source.

Signals are collected in a DB which keeps them ordered by timestamp and tracks
the shape of every distinct signal. The tracer subpackage turns a DB into a VCD
file:

	sources := vcd.NewSourceRegistry()
	src, _ := sources.Register("cpu.log")
	descs := vcd.NewDescriptorRegistry(sources)
	db := vcd.NewDB(vcd.Microseconds, sources)

	d, _ := descs.Register("Top.CPU.PC", vcd.TypeWire, 16, src)
	s, _ := vcd.NewInteger(d, 10, 0x1000)
	if err := db.Add(s); err != nil {
		// inconsistent signal: abort
	}

	t, _ := tracer.Create("out.vcd", db)
	defer t.Close()
	err := t.Dump()

*/
package vcd
