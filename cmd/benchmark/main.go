package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
	"github.com/wavecell/wavecell/wave"
)

const (
	widthsKey     = "widths"
	depthsKey     = "depths"
	iterationsKey = "iters"
	cpuProfileKey = "cpuprofile"
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark",
		Usage: "Measure wave propagation latency over chain grids",
		Flags: []cli.Flag{
			&cli.IntSliceFlag{
				Name:  widthsKey,
				Usage: "Numbers of parallel chains to build",
				Value: []int64{1, 10, 100, 1_000},
			},
			&cli.IntSliceFlag{
				Name:  depthsKey,
				Usage: "Chain depths to build",
				Value: []int64{1, 10, 100, 1_000},
			},
			&cli.IntFlag{
				Name:  iterationsKey,
				Usage: "Writes per configuration",
				Value: 100,
			},
			&cli.StringFlag{
				Name:  cpuProfileKey,
				Usage: "Write a CPU profile to this path",
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	if path := cmd.String(cpuProfileKey); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	widths := cmd.IntSlice(widthsKey)
	depths := cmd.IntSlice(depthsKey)
	iters := int(cmd.Int(iterationsKey))

	log.Print("running propagation benchmarks")

	tbl := table.NewWriter()
	tbl.SetTitle("Wave Propagation")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	for _, w := range widths {
		for _, d := range depths {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			rs := wave.NewReactiveSystem(func(from wave.Handle, err error) {
				log.Panic(err)
			})
			src := wave.Signal(rs, 1)
			for i := int64(0); i < w; i++ {
				last := src.Handle()
				for j := int64(0); j < d; j++ {
					prev := last
					last = rs.NewComputed(func() any {
						return rs.Read(prev).(int) + 1
					}, nil)
				}
				tail := last
				rs.Subscribe(func() {
					rs.Peek(tail)
				}, tail)
			}

			for i := 0; i < iters; i++ {
				start := time.Now()
				src.SetValue(src.Peek() + 1)
				tach.AddTime(time.Since(start))
			}

			calc := tach.Calc()
			tbl.AppendRows([]table.Row{
				{
					fmt.Sprintf("propagate: %d * %d", w, d),
					calc.Time.Avg,
					calc.Time.Min,
					calc.Time.P75,
					calc.Time.P99,
					calc.Time.Max,
				},
			})
		}
	}

	tbl.Render()
	return nil
}
