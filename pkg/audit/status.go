// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package audit

import (
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type status struct {
	read     atomic.Uint64
	analysed atomic.Uint64
	start    time.Time
	ticker   *time.Ticker
	progress chan bool
}

func newStatus(interval time.Duration) *status {
	return &status{
		start:    time.Now(),
		ticker:   time.NewTicker(interval),
		progress: make(chan bool),
	}
}

// BeginProgress reports the progress of the audit on every tick.
func (s *status) BeginProgress() {
	go func() {
		p := message.NewPrinter(language.English)
		for {
			select {
			case <-s.progress:
				return
			case <-s.ticker.C:
				log.Info().Msgf("%s of %s passwords analysed. %.0f passwords/s",
					p.Sprintf("%d", s.analysed.Load()), p.Sprintf("%d", s.read.Load()), s.perSecond())
			}
		}
	}()
}

func (s *status) LineRead() {
	s.read.Add(1)
}

func (s *status) Analysed(count int) {
	s.analysed.Add(uint64(count))
}

func (s *status) perSecond() float64 {
	elapsed := time.Since(s.start)
	if elapsed.Nanoseconds() > 0 {
		return float64(s.analysed.Load()) / elapsed.Seconds()
	}
	return float64(s.analysed.Load())
}

func (s *status) Done() {
	s.ticker.Stop()
	s.progress <- true

	p := message.NewPrinter(language.English)
	log.Info().Msgf("finished analysing %s passwords in %v. %.0f passwords/s",
		p.Sprintf("%d", s.analysed.Load()), time.Since(s.start), s.perSecond())
}
