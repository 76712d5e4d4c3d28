package stark

import "github.com/starkfib/sqfib-stark/internal/sqfib/field"

// GenerateTrace produces the squared-Fibonacci trace: a_0, a_1 from the
// seeds, then a_{n+2} = a_{n+1}^2 + a_n^2 for the remaining TraceLength-2
// entries.
func GenerateTrace(f *field.Field, cfg *Config) []*field.Element {
	trace := make([]*field.Element, cfg.TraceLength)
	trace[0] = f.NewUint64(cfg.SeedA)
	trace[1] = f.NewUint64(cfg.SeedB)
	for i := 2; i < cfg.TraceLength; i++ {
		trace[i] = trace[i-1].Square().Add(trace[i-2].Square())
	}
	return trace
}
