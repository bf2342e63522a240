package main

import (
	"github.com/alex65536/randset/internal/bench"
)

type Options struct {
	Workers    int    `toml:"workers"`
	Ops        int64  `toml:"ops"`
	Keys       int    `toml:"keys"`
	AddWeight  int    `toml:"add-weight"`
	DelWeight  int    `toml:"del-weight"`
	RandWeight int    `toml:"rand-weight"`
	Seed       uint64 `toml:"seed"`
}

func (o Options) Bench() bench.Options {
	return bench.Options{
		Workers:    o.Workers,
		Ops:        o.Ops,
		Keys:       o.Keys,
		AddWeight:  o.AddWeight,
		DelWeight:  o.DelWeight,
		RandWeight: o.RandWeight,
		Seed:       o.Seed,
	}
}
