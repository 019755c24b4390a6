// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package util

import (
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/mem"
)

func Stats() func() {
	return func() {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		log.Debug().Msgf("Alloc: %d MB, TotalAlloc: %d MB, Requested: %d MB",
			ms.Alloc/1024/1024, ms.TotalAlloc/1024/1024, ms.Sys/1024/1024)
		log.Debug().Msgf("Mallocs: %d, Frees: %d, GC: %d", ms.Mallocs, ms.Frees, ms.NumGC)
		log.Debug().Msgf("HeapAlloc: %d MB, HeapSys: %d MB, HeapIdle: %d MB",
			ms.HeapAlloc/1024/1024, ms.HeapSys/1024/1024, ms.HeapIdle/1024/1024)
		log.Debug().Msgf("HeapObjects: %d", ms.HeapObjects)
	}
}

func ApplyCliSettings(verbose bool, profile bool, pprofPort uint16) {
	if verbose {
		log.Warn().Msgf("Verbosity up")
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if profile {
		log.Info().Msgf("Profiling is enabled for this session. Server will listen on port %d", pprofPort)
		go func() {
			// pprof only ever binds to loopback.
			if err := http.ListenAndServe(fmt.Sprintf("127.0.0.1:%d", pprofPort), nil); err != nil {
				log.Error().Err(err).Msgf("Error starting profiling server on port %d", pprofPort)
				return
			}
		}()
	}
}

// CheckRam fails when the system does not have the memory to hold items
// values of itemSize bytes each. When the available memory cannot be read
// it only warns.
func CheckRam(items uint64, itemSize uint64) error {
	required := items * itemSize
	if memStat, err := mem.VirtualMemory(); err == nil {
		log.Debug().Msgf("System has %.2f MiB of RAM available", float64(memStat.Available)/(1024*1024))
		if required > memStat.Available {
			return fmt.Errorf("your system does not have the minimum required RAM (%d MiB) to execute this process", required/(1024*1024))
		}
	} else {
		log.Warn().Msgf("Estimated memory use for %d items %d MiB", items, required/(1024*1024))
		log.Warn().Msgf("This process will cause disk swapping and general slowness if your "+
			"current system memory is not at least %d MiB. ^C now to stop the process.", required/(1024*1024))
	}

	return nil
}

// ToScreamingSnakeCase turns Go field names into env var names: TLSCert -> TLS_CERT.
// Space separated lists, as found in validator params, are converted word by word.
func ToScreamingSnakeCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = screamingSnake(word)
	}
	return strings.Join(words, " ")
}

func screamingSnake(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteRune('_')
			}
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
