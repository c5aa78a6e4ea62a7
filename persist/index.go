package persist

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hupe1980/gridvamana/distance"
	"github.com/hupe1980/gridvamana/graphstore"
	"github.com/hupe1980/gridvamana/pointstore"
)

const (
	graphFileName = "graph.bin"
	dataFileName  = "data.bin"
)

// SaveToDir writes both the graph file and the point data file into dir,
// each via a temp-file-then-rename so neither file is ever observed
// half-written. The two renames are separate steps: a reader between them,
// or a failure of the second, sees the new graph file beside the previous
// (or missing) point data file.
func SaveToDir[T distance.Elem](dir string, points *pointstore.Store[T], g *graphstore.Graph, entryPoint uint32) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("persist: creating %s: %w", dir, err)
	}

	graphTmp, err := os.CreateTemp(dir, graphFileName+".tmp-*")
	if err != nil {
		return err
	}
	graphTmpPath := graphTmp.Name()
	graphTmp.Close()
	defer os.Remove(graphTmpPath)

	if err := SaveGraph(graphTmpPath, g, entryPoint); err != nil {
		return fmt.Errorf("persist: writing graph: %w", err)
	}

	dataTmp, err := os.CreateTemp(dir, dataFileName+".tmp-*")
	if err != nil {
		return err
	}
	dataTmpPath := dataTmp.Name()
	dataTmp.Close()
	defer os.Remove(dataTmpPath)

	if err := points.Save(dataTmpPath); err != nil {
		return fmt.Errorf("persist: writing point data: %w", err)
	}

	if err := os.Rename(graphTmpPath, filepath.Join(dir, graphFileName)); err != nil {
		return fmt.Errorf("persist: publishing graph file: %w", err)
	}
	if err := os.Rename(dataTmpPath, filepath.Join(dir, dataFileName)); err != nil {
		return fmt.Errorf("persist: publishing point data file: %w", err)
	}

	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}
	return nil
}

// LoadFromDir reads the point data file and the graph file written by
// SaveToDir, rejecting a vertex-count disagreement between the two (§4.7).
func LoadFromDir[T distance.Elem](dir string, slack float64) (*pointstore.Store[T], *graphstore.Graph, uint32, error) {
	points, err := pointstore.Load[T](filepath.Join(dir, dataFileName))
	if err != nil {
		return nil, nil, 0, fmt.Errorf("persist: loading point data: %w", err)
	}

	g, entryPoint, err := LoadGraph(filepath.Join(dir, graphFileName), points.Len(), slack)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("persist: loading graph: %w", err)
	}

	return points, g, entryPoint, nil
}
