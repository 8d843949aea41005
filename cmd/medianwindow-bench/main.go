// Copyright (C) 2020 Markus L. Noga
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// medianwindow-bench drives the sliding-median-window core over generated
// input and reports wall-clock time. Invocation takes 8 positional
// arguments: N nan_count inf_count low high W S strict_nan.
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/klauspost/cpuid/v2"
	"github.com/pbnjay/memory"
	"gonum.org/v1/gonum/stat"

	"github.com/mlnoga/medianwindow/internal/medianwindow"
	"github.com/mlnoga/medianwindow/internal/oracle"
	"github.com/mlnoga/medianwindow/internal/xlog"
)

const seed = 42
const repeats = 5

type args struct {
	n, nanCount, infCount int
	low, high             float64
	window, step          int
	strictNaN             bool
}

func parseArgs(raw []string) (args, error) {
	var a args
	if len(raw) != 8 {
		return a, fmt.Errorf("expected 8 positional arguments, got %d", len(raw))
	}

	var err error
	if a.n, err = strconv.Atoi(raw[0]); err != nil {
		return a, fmt.Errorf("N: %w", err)
	}
	if a.nanCount, err = strconv.Atoi(raw[1]); err != nil {
		return a, fmt.Errorf("nan_count: %w", err)
	}
	if a.infCount, err = strconv.Atoi(raw[2]); err != nil {
		return a, fmt.Errorf("inf_count: %w", err)
	}
	if a.low, err = strconv.ParseFloat(raw[3], 64); err != nil {
		return a, fmt.Errorf("low: %w", err)
	}
	if a.high, err = strconv.ParseFloat(raw[4], 64); err != nil {
		return a, fmt.Errorf("high: %w", err)
	}
	if a.window, err = strconv.Atoi(raw[5]); err != nil {
		return a, fmt.Errorf("W: %w", err)
	}
	if a.step, err = strconv.Atoi(raw[6]); err != nil {
		return a, fmt.Errorf("S: %w", err)
	}
	if a.strictNaN, err = strconv.ParseBool(raw[7]); err != nil {
		return a, fmt.Errorf("strict_nan: %w", err)
	}

	if a.n <= 0 {
		return a, fmt.Errorf("N must be > 0, got %d", a.n)
	}
	if a.nanCount+a.infCount > a.n {
		return a, fmt.Errorf("nan_count + inf_count (%d) exceeds N (%d)", a.nanCount+a.infCount, a.n)
	}
	if a.low >= a.high {
		return a, fmt.Errorf("low (%g) must be < high (%g)", a.low, a.high)
	}
	return a, nil
}

func main() {
	a, err := parseArgs(os.Args[1:])
	if err != nil {
		xlog.Printf("medianwindow-bench: %v\n", err)
		xlog.Printf("usage: medianwindow-bench N nan_count inf_count low high W S strict_nan\n")
		os.Exit(1)
	}

	xlog.Printf("CPU: %s, %d physical cores, AVX2=%v\n", cpuid.CPU.BrandName, cpuid.CPU.PhysicalCores, cpuid.CPU.Supports(cpuid.AVX2))
	xlog.Printf("system memory: %d MiB\n", memory.TotalMemory()/1024/1024)

	if a.window <= 1 || a.window > a.n || a.step == 0 || medianwindow.OutputLength(a.n, a.window, a.step) <= 0 {
		xlog.Printf("medianwindow-bench: W=%d S=%d incompatible with N=%d\n", a.window, a.step, a.n)
		os.Exit(1)
	}
	outLen := medianwindow.OutputLength(a.n, a.window, a.step)

	rng := oracle.NewSeeded(seed)
	input := oracle.GenerateInput(rng, a.n, a.nanCount, a.infCount, a.low, a.high)
	output := make([]float64, outLen)

	elapsedSeconds := make([]float64, repeats)
	for i := 0; i < repeats; i++ {
		start := time.Now()
		ok := medianwindow.SlidingMedianWindow(input, a.window, a.step, a.strictNaN, output)
		elapsedSeconds[i] = time.Since(start).Seconds()
		if !ok {
			xlog.Printf("medianwindow-bench: core rejected arguments (N=%d W=%d S=%d)\n", a.n, a.window, a.step)
			os.Exit(1)
		}
	}

	mean, stddev := stat.MeanStdDev(elapsedSeconds, nil)
	xlog.Printf("N=%d W=%d S=%d strict_nan=%v outputs=%d\n", a.n, a.window, a.step, a.strictNaN, outLen)
	xlog.Printf("wall time over %d runs: mean=%.9fs stddev=%.9fs\n", repeats, mean, stddev)

	os.Exit(0)
}
