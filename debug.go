package starvine

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
)

// PoolCounts reports the size of every entity pool.
type PoolCounts struct {
	Stars      int
	Cosmic     int
	Particles  int
	Characters int
	Ripples    int
	Effects    int
}

// FrameStats holds timing and submission metrics for the most recent frame.
type FrameStats struct {
	Frame      int
	UpdateTime time.Duration // simulation and command emission
	SortTime   time.Duration
	SubmitTime time.Duration
	Commands   int
	DrawCalls  int
	Pools      PoolCounts
	Sprites    int
	Uptime     time.Duration
}

// Stats returns metrics for the most recent tick and draw.
func (s *Scene) Stats() FrameStats {
	st := s.stats
	st.Frame = s.ctx.Frame
	st.Pools = s.Counts()
	st.Sprites = len(s.sprites)
	st.Uptime = s.clock.Now().Sub(s.started)
	return st
}

var shortUnits, _ = durafmt.DefaultUnitsCoder.Decode("y:yrs,wk:wks,d:d,h:h,m:m,s:s,ms:ms,us:us")

// formatUptime renders d with its two most significant units.
func formatUptime(d time.Duration) string {
	return durafmt.Parse(d).LimitFirstN(2).Format(shortUnits)
}

// debugLog logs frame stats at debug level, at most once per second.
func (s *Scene) debugLog() {
	if !s.debug || !s.statsLimiter.Allow() {
		return
	}
	st := s.Stats()
	logger.Debug("frame",
		"frame", humanize.Comma(int64(st.Frame)),
		"update", st.UpdateTime,
		"sort", st.SortTime,
		"submit", st.SubmitTime,
		"commands", humanize.Comma(int64(st.Commands)),
		"draws", st.DrawCalls,
		"uptime", formatUptime(st.Uptime),
	)
	logger.Debug("pools",
		"particles", st.Pools.Particles,
		"characters", st.Pools.Characters,
		"ripples", st.Pools.Ripples,
		"effects", st.Pools.Effects,
		"sprites", st.Sprites,
	)
	s.debugCheckPools()
}

// debugCheckPools warns when a pool exceeds its bound.
func (s *Scene) debugCheckPools() {
	if n, limit := s.particles.Len(), s.ctx.ParticleCap(); n > limit {
		logger.Warn("particle pool over cap", "count", n, "cap", limit)
	}
	if n := s.characters.Len(); n > MaxCharacters {
		logger.Warn("character pool over cap", "count", n, "cap", MaxCharacters)
	}
}
