package cmd

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"sync"

	"github.com/gridflow/isurf/ablate"
	"github.com/gridflow/isurf/config"
	"github.com/gridflow/isurf/grid"
	"github.com/gridflow/isurf/isurf"
	"github.com/gridflow/isurf/transport"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	optGroup      string
	optTypeFile   string
	optStoreFixID string
	opt2D         bool
	optPlot       bool
	optProfile    bool
	optSamplePerf bool
	optRanks      int
)

// isurfCmd implements the read_isurf command grammar (spec §6):
//
//	isurf run <grid-group-name> Nx Ny Nz <grid-file> <threshold> [options]
var isurfCmd = &cobra.Command{
	Use:   "run <grid-group-name> Nx Ny Nz <grid-file> <threshold>",
	Short: "Reconstruct an implicit surface from a corner-value grid file",
	Args:  cobra.ExactArgs(6),
	RunE:  runISurf,
}

func init() {
	rootCmd.AddCommand(isurfCmd)
	isurfCmd.Flags().StringVar(&optGroup, "group", "", "surf-group name whose bit is OR'd into every emitted primitive")
	isurfCmd.Flags().StringVar(&optTypeFile, "type", "", "per-cell integer type file, overrides the default type")
	isurfCmd.Flags().StringVar(&optStoreFixID, "store", "", "fix-id of the ablate collaborator to hand reconciled corners to")
	isurfCmd.Flags().BoolVar(&opt2D, "2d", false, "treat the grid as 2D (requires Nz=1)")
	isurfCmd.Flags().BoolVar(&optPlot, "plot", false, "open a blocking 2D preview of the emitted line segments (2D only)")
	isurfCmd.Flags().BoolVar(&optProfile, "profile", false, "wrap rank 0's run in a pkg/profile CPU profile")
	isurfCmd.Flags().BoolVar(&optSamplePerf, "sample-perf", false, "sample hardware counters around the reconciler phase")
	isurfCmd.Flags().IntVar(&optRanks, "ranks", 0, "number of in-process ranks to partition the grid across (0 = use config)")
}

func runISurf(cmd *cobra.Command, args []string) error {
	groupName := args[0]
	nx, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("isurf: invalid Nx %q: %w", args[1], err)
	}
	ny, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("isurf: invalid Ny %q: %w", args[2], err)
	}
	nz, err := strconv.Atoi(args[3])
	if err != nil {
		return fmt.Errorf("isurf: invalid Nz %q: %w", args[3], err)
	}
	gridFile := args[4]
	threshold, err := strconv.ParseFloat(args[5], 64)
	if err != nil {
		return fmt.Errorf("isurf: invalid threshold %q: %w", args[5], err)
	}
	if threshold <= 0 || threshold >= 255 || threshold == math.Trunc(threshold) {
		return fmt.Errorf("isurf: threshold %v must be strictly between 0 and 255 and non-integer", threshold)
	}
	if opt2D && nz != 1 {
		return fmt.Errorf("isurf: --2d requires Nz=1, got Nz=%d", nz)
	}

	cfg := loadRunConfig()
	if optRanks > 0 {
		cfg.NumRanks = optRanks
	}
	cfg.Profile = cfg.Profile || optProfile
	cfg.Plot = cfg.Plot || optPlot
	cfg.SamplePerf = cfg.SamplePerf || optSamplePerf

	f, err := os.Open(gridFile)
	if err != nil {
		return fmt.Errorf("isurf: opening grid file: %w", err)
	}
	defer f.Close()
	// Scatter reads only the payload from its gridReader (it builds and
	// broadcasts the header itself from the requested extents), so skip
	// the on-disk header here before handing the file to it.
	headerBytes := 3 * 4
	if opt2D {
		headerBytes = 2 * 4
	}
	if _, err := io.CopyN(io.Discard, f, int64(headerBytes)); err != nil {
		return fmt.Errorf("isurf: reading grid file header: %w", err)
	}

	grids, hashes, neighbor := isurf.BuildPartitionedGrids(groupName, nx, ny, nz, opt2D, cfg.NumRanks)
	groupMask := grids[0].DefineGroup(groupName)
	for _, g := range grids[1:] {
		g.DefineGroup(groupName)
	}
	if optGroup != "" {
		for _, g := range grids {
			groupMask |= g.DefineGroup(optGroup)
		}
	}

	comm := transport.NewCommunicator(cfg.NumRanks)

	if optTypeFile != "" {
		tf, err := os.Open(optTypeFile)
		if err != nil {
			return fmt.Errorf("isurf: opening types file: %w", err)
		}
		defer tf.Close()
		typesHeaderBytes := 3 * 4
		if opt2D {
			typesHeaderBytes = 2 * 4
		}
		if _, err := io.CopyN(io.Discard, tf, int64(typesHeaderBytes)); err != nil {
			return fmt.Errorf("isurf: reading types file header: %w", err)
		}
		if err := scatterTypesAcrossRanks(comm, tf, grids, hashes); err != nil {
			return err
		}
	}

	cfgs := make([]*isurf.RunConfig, cfg.NumRanks)
	for r := 0; r < cfg.NumRanks; r++ {
		var reader io.Reader
		if r == 0 {
			reader = f
		}
		cfgs[r] = &isurf.RunConfig{
			Rank: r, Root: 0,
			Comm:       comm,
			Grid:       grids[r],
			Hash:       hashes[r],
			Corners:    isurf.NewCornersBuffer(grids[r]),
			GridReader: reader,
			GroupName:  groupName,
			GroupMask:  groupMask,
			Theta:      threshold,
			Neighbor:   neighbor,
			Profile:    cfg.Profile && r == 0,
			FaceTol:    cfg.BoundaryTol,
			SamplePerf: cfg.SamplePerf && r == 0,
		}
	}

	outcomes := isurf.RunDistributed(cfgs)
	for r, o := range outcomes {
		if o.Err != nil {
			return fmt.Errorf("isurf: rank %d: %w", r, o.Err)
		}
	}

	totalTris, totalLines := 0, 0
	for _, o := range outcomes {
		totalTris += len(o.Store.Tris)
		totalLines += len(o.Store.Lines)
	}
	if cfg.ReportTimes {
		fmt.Println(outcomes[0].Times.SummaryLine())
		fmt.Printf("total tris=%d lines=%d across %d rank(s)\n", totalTris, totalLines, cfg.NumRanks)
	}

	if optStoreFixID != "" {
		if err := storeWithAblate(groupMask, cfgs); err != nil {
			return err
		}
	}

	if cfg.Plot && opt2D {
		isurf.PreviewLines(outcomes[0].Store)
	}
	return nil
}

// scatterTypesAcrossRanks fans isurf.ScatterTypes out across one
// goroutine per rank, the same in-process stand-in for P processes
// RunDistributed uses for the core tessellation/reconcile passes.
func scatterTypesAcrossRanks(comm *transport.Communicator, typesReader io.Reader, grids []*grid.Grid, hashes []*grid.CellHash) error {
	np := len(grids)
	errs := make([]error, np)
	var wg sync.WaitGroup
	wg.Add(np)
	for r := 0; r < np; r++ {
		r := r
		go func() {
			defer wg.Done()
			var reader io.Reader
			if r == 0 {
				reader = typesReader
			}
			errs[r] = isurf.ScatterTypes(comm, r, 0, reader, hashes[r], grids[r])
		}()
	}
	wg.Wait()
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// storeWithAblate hands every reconciled cell's corner values to the
// named ablate collaborator, verifying its group first (spec §6's
// `store <fix-id>` option).
func storeWithAblate(groupMask uint32, cfgs []*isurf.RunConfig) error {
	c := ablate.NewCollaborator(groupMask)
	for _, cfgr := range cfgs {
		for i := range cfgr.Grid.Cells {
			cell := &cfgr.Grid.Cells[i]
			if !cell.HasSurf {
				continue
			}
			if err := c.StoreCorners(cell, cfgr.Corners[cell.Local]); err != nil {
				return fmt.Errorf("isurf: store (ablate): %w", err)
			}
		}
		if err := c.VerifyGroup(cfgr.Grid.Cells); err != nil {
			return fmt.Errorf("isurf: store (ablate): %w", err)
		}
	}
	return nil
}

// loadRunConfig merges config.Default() with the ~/.isurf.yaml/--config
// document spf13/viper already read in cmd/root.go's initConfig.
func loadRunConfig() *config.RunConfig {
	rc := config.Default()
	if viper.IsSet("NumRanks") {
		rc.NumRanks = viper.GetInt("NumRanks")
	}
	if viper.IsSet("ChunkSize") {
		rc.ChunkSize = viper.GetInt("ChunkSize")
	}
	if viper.IsSet("BoundaryTol") {
		rc.BoundaryTol = viper.GetFloat64("BoundaryTol")
	}
	if viper.IsSet("ReportTimes") {
		rc.ReportTimes = viper.GetBool("ReportTimes")
	}
	if viper.IsSet("Profile") {
		rc.Profile = viper.GetBool("Profile")
	}
	if viper.IsSet("SamplePerf") {
		rc.SamplePerf = viper.GetBool("SamplePerf")
	}
	if viper.IsSet("Plot") {
		rc.Plot = viper.GetBool("Plot")
	}
	return rc
}
