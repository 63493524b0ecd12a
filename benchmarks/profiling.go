package benchmarks

import (
	"fmt"
	"os"
	"path"
	"runtime"
	"runtime/pprof"
)

var cpuProfileFile *os.File

func startProfiling() error {
	if cpuprofile == "" {
		return nil
	}
	if err := os.MkdirAll(saveFile, os.ModePerm); err != nil {
		return err
	}
	cpuProfPath := path.Join(saveFile, cpuprofile)
	fmt.Println("Profiling CPU to ", cpuProfPath)
	f, err := os.Create(cpuProfPath)
	if err != nil {
		return fmt.Errorf("could not create CPU profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return fmt.Errorf("could not start CPU profile: %w", err)
	}
	cpuProfileFile = f
	return nil
}

func stopProfiling() error {
	if cpuProfileFile != nil {
		pprof.StopCPUProfile()
		cpuProfileFile.Close()
		cpuProfileFile = nil
	}

	if memprofile == "" {
		return nil
	}
	if err := os.MkdirAll(saveFile, os.ModePerm); err != nil {
		return err
	}
	memProfPath := path.Join(saveFile, memprofile)
	fmt.Println("Profiling Memory to ", memProfPath)
	f, err := os.Create(memProfPath)
	if err != nil {
		return fmt.Errorf("could not create memory profile: %w", err)
	}
	defer f.Close()
	runtime.GC() // get up-to-date statistics
	if err := pprof.WriteHeapProfile(f); err != nil {
		return fmt.Errorf("could not write memory profile: %w", err)
	}
	return nil
}
