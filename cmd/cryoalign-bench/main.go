// Command cryoalign-bench exercises the coarse and fine scoring kernels
// end to end against a synthetic reference: it builds a Fourier-domain
// density, searches a grid of orientations and translations with the
// coarse kernel, reduces the coarse grid into a fine job list, refines it,
// and reports summary statistics.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"cryoalign/internal/models"
	"cryoalign/pkg/config"
	"cryoalign/pkg/driver"
	"cryoalign/pkg/fourier"
	"cryoalign/pkg/jobtable"
	"cryoalign/pkg/kernel"
	"cryoalign/pkg/scoreviz"

	"gonum.org/v1/gonum/stat"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML configuration file (defaults are used if empty or missing)")
	seed := flag.Int64("seed", 1, "Seed for the synthetic reference density")
	numBlobs := flag.Int("blobs", 6, "Number of Gaussian blobs in the synthetic density")
	metric := flag.String("metric", "diff2", "Scoring metric: diff2 or cc")
	flag.Parse()

	fmt.Println("================================")
	fmt.Println("CRYOALIGN CROSS-CORRELATION INNER-LOOP BENCHMARK")
	fmt.Println("================================")

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	geom := models.Geometry{ImgX: cfg.Geometry.ImgX, ImgY: cfg.Geometry.ImgY, ImgZ: cfg.Geometry.ImgZ, MaxR: cfg.Geometry.MaxR}

	density := fourier.SyntheticDensity(geom.ImgX, geom.ImgY, geom.ImgZ, *numBlobs, *seed)
	ref, err := fourier.BuildReference(density, geom.ImgX, geom.ImgY, geom.ImgZ, geom.MaxR)
	if err != nil {
		log.Fatalf("failed to build reference: %v", err)
	}
	projector := fourier.NewRefProjector(ref)

	eulers, gridSize, eulersPerBlock := buildOrientationGrid(cfg.Search.BlockSize, cfg.Search.EulersPerBlock)
	transX, transY, transZ := buildTranslationGrid(cfg.Search.TranslationRange, cfg.Search.TranslationStep, geom.Is3D())
	translationNum := len(transX)

	corr := make([]float64, geom.Size())
	for i := range corr {
		corr[i] = 1
	}

	fmt.Printf("Geometry: %dx%dx%d, maxR=%d\n", geom.ImgX, geom.ImgY, geom.ImgZ, geom.MaxR)
	fmt.Printf("Orientation grid: %d blocks x %d per block = %d orientations\n", gridSize, eulersPerBlock, gridSize*eulersPerBlock)
	fmt.Printf("Translation grid: %d translations\n", translationNum)
	fmt.Printf("Metric: %s\n\n", *metric)

	coarseOut := make([]float64, gridSize*eulersPerBlock*translationNum)

	start := time.Now()
	err = driver.Run(context.Background(), gridSize, cfg.Runtime.NumWorkers, func(block int) {
		blockParams := kernel.CoarseParams{
			GridSize:       1,
			Eulers:         eulers[block*eulersPerBlock*9 : (block+1)*eulersPerBlock*9],
			TransX:         transX,
			TransY:         transY,
			TransZ:         transZ,
			ImgReal:        ref.Real,
			ImgImag:        ref.Imag,
			Corr:           corr,
			Projector:      projector,
			TranslationNum: translationNum,
			ImageSize:      geom.Size(),
			EulersPerBlock: eulersPerBlock,
			Data3D:         geom.Is3D(),
			Ref3D:          cfg.Geometry.Ref3D,
		}
		out := coarseOut[block*eulersPerBlock*translationNum : (block+1)*eulersPerBlock*translationNum]
		if *metric == "cc" {
			kernel.CCCoarse(blockParams, cfg.Search.ExpLocalSqrtXi2, out)
		} else {
			kernel.Diff2Coarse(blockParams, out)
		}
	}, func(done, total int) {
		if cfg.Runtime.Verbose {
			fmt.Printf("\rcoarse search: %d/%d blocks", done, total)
		}
	})
	if err != nil {
		log.Fatalf("coarse search failed: %v", err)
	}
	if cfg.Runtime.Verbose {
		fmt.Println()
	}
	coarseElapsed := time.Since(start)

	orientationNum := gridSize * eulersPerBlock
	translations := make([]models.Translation, translationNum)
	for i := range translations {
		translations[i] = models.Translation{X: transX[i], Y: transY[i], Z: transZ[i]}
	}

	mode := jobtable.ModeDiff2
	if *metric == "cc" {
		mode = jobtable.ModeCC
	}
	jobs := jobtable.BuildFine(coarseOut, orientationNum, translationNum, translations, cfg.Search.FineKeep, mode)

	fineOut := make([]float64, jobs.TotalTranslations())
	fineParams := kernel.FineParams{
		Eulers:  eulers,
		ImgReal: ref.Real, ImgImag: ref.Imag,
		TransX: transX, TransY: transY, TransZ: transZ,
		Projector: projector,
		Corr:      corr,
		Jobs:      jobs,
		Data3D:    geom.Is3D(),
		Ref3D:     cfg.Geometry.Ref3D,
	}
	start = time.Now()
	if *metric == "cc" {
		kernel.CCFine(fineParams, cfg.Search.SumInit, cfg.Search.ExpLocalSqrtXi2, fineOut)
	} else {
		kernel.Diff2Fine(fineParams, cfg.Search.SumInit, fineOut)
	}
	fineElapsed := time.Since(start)

	mean := stat.Mean(fineOut, nil)
	variance := stat.Variance(fineOut, nil)
	best := math.Inf(1)
	for _, v := range fineOut {
		if v < best {
			best = v
		}
	}

	fmt.Printf("\nCoarse search completed in %.4fs\n", coarseElapsed.Seconds())
	fmt.Printf("Fine search completed in %.4fs over %d jobs (%d translations)\n", fineElapsed.Seconds(), jobs.NumJobs(), len(fineOut))
	fmt.Printf("\nFine score summary:\n")
	fmt.Printf("  best:     %.6f\n", best)
	fmt.Printf("  mean:     %.6f\n", mean)
	fmt.Printf("  variance: %.6f\n", variance)

	if cfg.Output.SaveScoreGrids {
		dir := cfg.Output.ScoreGridDir
		if !filepath.IsAbs(dir) {
			wd, err := os.Getwd()
			if err == nil {
				dir = filepath.Join(wd, dir)
			}
		}
		width := len(transX)
		if err := scoreviz.SaveOrientationSequence(dir, coarseOut, orientationNum, width, 1); err != nil {
			log.Printf("warning: failed to save score grids: %v", err)
		} else {
			fmt.Printf("\nScore grids saved to: %s\n", dir)
		}
	}
}

// buildOrientationGrid produces gridSize*eulersPerBlock rotation matrices,
// one per orientation, spaced evenly over a full turn about the z axis so
// distinct orientations produce distinct projections.
func buildOrientationGrid(gridSize, eulersPerBlock int) (eulers []float64, resolvedGridSize, resolvedEulersPerBlock int) {
	if gridSize <= 0 {
		gridSize = 1
	}
	if eulersPerBlock <= 0 {
		eulersPerBlock = 1
	}
	total := gridSize * eulersPerBlock
	eulers = make([]float64, total*9)
	for i := 0; i < total; i++ {
		theta := 2 * math.Pi * float64(i) / float64(total)
		s, c := math.Sincos(theta)
		base := i * 9
		eulers[base+0], eulers[base+1], eulers[base+2] = c, -s, 0
		eulers[base+3], eulers[base+4], eulers[base+5] = s, c, 0
		eulers[base+6], eulers[base+7], eulers[base+8] = 0, 0, 1
	}
	return eulers, gridSize, eulersPerBlock
}

// buildTranslationGrid enumerates every shift spaced step apart within
// [-range,range] along x and y (and z for volumes).
func buildTranslationGrid(rng, step float64, data3D bool) (x, y, z []float64) {
	if step <= 0 {
		step = 1
	}
	if rng < 0 {
		rng = 0
	}
	var offsets []float64
	for v := -rng; v <= rng+1e-9; v += step {
		offsets = append(offsets, v)
	}
	if len(offsets) == 0 {
		offsets = []float64{0}
	}

	zVals := []float64{0}
	if data3D {
		zVals = offsets
	}

	for _, zv := range zVals {
		for _, yv := range offsets {
			for _, xv := range offsets {
				x = append(x, xv)
				y = append(y, yv)
				z = append(z, zv)
			}
		}
	}
	return x, y, z
}
