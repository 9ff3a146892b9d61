// Command areacheck loads an area, triangulates it and reports every
// problem found, like the editor's problem list does.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/automoto/sectormap/area"
	"github.com/automoto/sectormap/collision"
	"github.com/automoto/sectormap/config"
)

func checkBlockSize(size float64) error {
	if !(size > 0) || math.IsInf(size, 1) {
		return fmt.Errorf("block size %v must be a positive number", size)
	}
	return nil
}

func main() {
	blockSize := flag.Float64("blocksize", config.Geometry.BlockmapBlockSize, "Blockmap block size")
	strict := flag.Bool("strict", false, "Panic on graph invariant violations")
	out := flag.String("out", "", "Save the loaded area to this file")
	snapshot := flag.String("snapshot", "", "Also save the area as a named snapshot in the user data directory")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <area file | level.tmx>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := checkBlockSize(*blockSize); err != nil {
		log.Fatalf("Invalid flags: %v", err)
	}
	config.Geometry.BlockmapBlockSize = *blockSize
	config.Geometry.StrictInvariants = *strict

	path := flag.Arg(0)
	a, err := area.Open(path, area.EditorLoad)
	if err != nil {
		log.Fatalf("Failed to load area: %v", err)
	}

	problems := a.Problems.Descriptions(a.Geometry)
	for _, p := range problems {
		fmt.Println(p)
	}
	violations := a.Geometry.CheckStability()
	for _, v := range violations {
		fmt.Printf("invariant: %v\n", v)
	}

	space := collision.Build(a.Geometry)
	log.Printf("Checked %s: %d problems, %d invariant violations, blockmap %dx%d, %d collision objects",
		path, len(problems), len(violations), a.Blockmap.Cols, a.Blockmap.Rows, space.ObjectCount())

	if *out != "" {
		if err := a.WriteFile(*out); err != nil {
			log.Fatalf("Failed to save area: %v", err)
		}
	}
	if *snapshot != "" {
		store, err := area.OpenStore()
		if err != nil {
			log.Fatalf("Failed to open snapshot store: %v", err)
		}
		if err := store.SaveSnapshot(*snapshot, a); err != nil {
			log.Fatalf("Failed to save snapshot: %v", err)
		}
	}

	if len(problems) > 0 || len(violations) > 0 {
		os.Exit(1)
	}
}
