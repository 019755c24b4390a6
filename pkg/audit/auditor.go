// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package audit

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/alvinbaena/pwd-meter/internal/util"
	"github.com/alvinbaena/pwd-meter/pkg/strength"
	"github.com/rs/zerolog/log"
	"github.com/thinhdanggroup/executor"
)

const (
	chunkSize     = 4 * 1024
	maxLineLength = 1024 * 1024
)

// Auditor analyses every line of a wordlist and keeps only aggregate figures.
// An Auditor runs one audit at a time.
type Auditor struct {
	analyzer    *strength.Analyzer
	parallelism int
	chunkSize   int
	interval    time.Duration
	linesPool   sync.Pool
	rm          sync.Mutex
	report      *Report
	stat        *status
}

// NewAuditor creates an auditor. A parallelism of 0 uses one worker per CPU.
func NewAuditor(analyzer *strength.Analyzer, parallelism int) *Auditor {
	a := &Auditor{
		analyzer:    analyzer,
		parallelism: parallelism,
		chunkSize:   chunkSize,
		interval:    10 * time.Second,
	}
	a.linesPool.New = func() interface{} {
		return make([]string, 0, a.chunkSize)
	}
	return a
}

// Process reads the list line by line. Lines are analysed in chunks on a
// bounded worker pool and dropped as soon as their chunk is done.
func (a *Auditor) Process(ctx context.Context, in io.Reader) (*Report, error) {
	s := util.Stats()
	defer s()

	threads := a.parallelism
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	tasks, err := executor.New(executor.Config{
		ReqPerSeconds: 0,
		QueueSize:     2 * threads,
		NumWorkers:    threads,
	})
	if err != nil {
		return nil, err
	}
	defer tasks.Close()

	log.Info().Msgf("auditing wordlist with %d threads, ^C to stop the process", threads)
	a.report = newReport(0)
	a.stat = newStatus(a.interval)
	a.stat.BeginProgress()

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	lines := a.linesPool.Get().([]string)[:0]
	for scanner.Scan() {
		if err = ctx.Err(); err != nil {
			break
		}

		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		a.stat.LineRead()

		lines = append(lines, line)
		if len(lines) == a.chunkSize {
			if err = tasks.Publish(a.processChunk, lines); err != nil {
				break
			}
			lines = a.linesPool.Get().([]string)[:0]
		}
	}
	if err == nil && len(lines) > 0 {
		err = tasks.Publish(a.processChunk, lines)
	}

	tasks.Wait()
	a.stat.Done()

	if err == nil {
		err = scanner.Err()
	}
	if err != nil {
		return nil, fmt.Errorf("audit stopped: %w", err)
	}

	return a.report, nil
}

func (a *Auditor) processChunk(lines []string) {
	chunk := newReport(len(lines))
	for _, line := range lines {
		chunk.add(a.analyzer.Analyze(line))
	}
	a.stat.Analysed(len(lines))

	clear(lines)
	a.linesPool.Put(lines[:0])

	a.rm.Lock()
	defer a.rm.Unlock()
	a.report.merge(chunk)
}
