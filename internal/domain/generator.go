package domain

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sync"

	"golang.org/x/sync/errgroup"

	"chisel.dev/pkg/chisel/internal/adapter"
	"chisel.dev/pkg/chisel/internal/controller"
	m "chisel.dev/pkg/chisel/internal/model"
)

// GenerateArgs configures one full generation run.
type GenerateArgs struct {
	Paths   []m.Path
	Exclude []string
	LibName string
	Output  m.Path
	Threads int
}

// EstimateArgs configures a dry run that classifies declarations without
// writing anything.
type EstimateArgs struct {
	Paths   []m.Path
	Exclude []string
}

// ViewArgs configures a summary of a previously generated output directory.
type ViewArgs struct {
	Output m.Path
}

// Workflow is the use-case surface the CLI drives.
type Workflow interface {
	Generate(ctx context.Context, args GenerateArgs) error
	Estimate(ctx context.Context, args EstimateArgs) error
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	adapter.ManifestFSAdapter
	adapter.ManifestAdapter
	adapter.HeaderStore
	controller.UI
}

// NewWorkflow creates a Workflow with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.ManifestFSAdapter,
	manifestAdapter adapter.ManifestAdapter,
	headerStore adapter.HeaderStore,
	ui controller.UI,
) Workflow {
	return &workflow{
		ManifestFSAdapter: fsAdapter,
		ManifestAdapter:   manifestAdapter,
		HeaderStore:       headerStore,
		UI:                ui,
	}
}

// Generate runs the whole pipeline: scan manifests, decode them with up to
// Threads workers, emit every declaration through one serialized emitter,
// link, and persist the finalized headers.
//
// Manifests are decoded concurrently but emission happens in manifest
// order: registry mutations are serialized before the linker barrier, so
// output is deterministic regardless of worker scheduling.
func (w *workflow) Generate(ctx context.Context, args GenerateArgs) error {
	batches, manifests, err := w.loadDeclarations(ctx, args.Paths, args.Exclude, args.Threads)
	if err != nil {
		w.DisplayError(err)
		return err
	}

	session := NewSession(args.LibName)
	emitter := NewEmitter(session)

	for i, batch := range batches {
		for _, decl := range batch {
			if err := emitter.Emit(decl); err != nil {
				slog.Error("declaration rejected", "manifest", manifests[i], "name", decl.Name, "error", err)
				w.DisplayError(err)

				return err
			}
		}
	}

	outputs, err := session.Finalize()
	if err != nil {
		slog.Error("linking failed", "error", err)
		w.DisplayError(err)

		return err
	}

	if err := w.WriteHeaders(args.Output, outputs); err != nil {
		slog.Error("writing headers failed", "dir", args.Output, "error", err)
		return fmt.Errorf("write headers: %w", err)
	}

	slog.Info("generation finished", "lib", session.LibName(), "headers", len(outputs), "manifests", len(manifests))

	return w.DisplayGeneration(session.LibName(), headerStats(session, outputs))
}

// Estimate decodes the manifests and reports how many declarations would
// cross the boundary versus being silently skipped. Nothing is written.
func (w *workflow) Estimate(ctx context.Context, args EstimateArgs) error {
	batches, manifests, err := w.loadDeclarations(ctx, args.Paths, args.Exclude, 1)
	if err != nil {
		w.DisplayError(err)
		return err
	}

	stats := make([]controller.ManifestStat, 0, len(batches))

	for i, batch := range batches {
		stat := controller.ManifestStat{Manifest: manifests[i]}

		for _, decl := range batch {
			if Exportable(decl) {
				stat.Exportable++
			} else {
				stat.Skipped++
			}
		}

		stats = append(stats, stat)
	}

	return w.DisplayEstimation(stats)
}

// View lists the headers present in a previously generated output
// directory, with the size of each.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	headers, err := w.ListHeaders(args.Output)
	if err != nil {
		w.DisplayError(err)
		return err
	}

	files := make([]controller.HeaderFile, 0, len(headers))

	for _, header := range headers {
		data, err := w.ReadHeader(args.Output, header)
		if err != nil {
			w.DisplayError(err)
			return err
		}

		files = append(files, controller.HeaderFile{Header: header, Bytes: len(data)})
	}

	return w.DisplayHeaders(args.Output, files)
}

// loadDeclarations scans the given paths for manifests and decodes them
// concurrently. Batches are returned in manifest order.
func (w *workflow) loadDeclarations(ctx context.Context, paths []m.Path, exclude []string, threads int) ([][]m.Declaration, []m.Path, error) {
	if len(paths) == 0 {
		paths = []m.Path{"."}
	}

	if threads <= 0 {
		threads = 1
	}

	filters, err := compileExcludes(exclude)
	if err != nil {
		return nil, nil, err
	}

	var manifests []m.Path

	seen := make(map[m.Path]bool)

	for _, path := range paths {
		found, err := w.FindManifests(path)
		if err != nil {
			return nil, nil, fmt.Errorf("scan %s: %w", path, err)
		}

		for _, manifest := range found {
			if seen[manifest] || matchesAny(filters, string(manifest)) {
				continue
			}

			seen[manifest] = true
			manifests = append(manifests, manifest)
		}
	}

	batches := make([][]m.Declaration, len(manifests))

	var mu sync.Mutex

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(threads)

	for i, manifest := range manifests {
		i, manifest := i, manifest
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			data, err := w.ReadFile(manifest)
			if err != nil {
				return fmt.Errorf("read %s: %w", manifest, err)
			}

			decls, err := w.Decode(string(manifest), data)
			if err != nil {
				return err
			}

			mu.Lock()
			batches[i] = decls
			mu.Unlock()

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, nil, err
	}

	return batches, manifests, nil
}

func headerStats(session *Session, outputs m.Outputs) []controller.HeaderStat {
	stats := make([]controller.HeaderStat, 0, len(outputs))

	for id, text := range outputs {
		stats = append(stats, controller.HeaderStat{
			Header:       id,
			Declarations: session.declCounts[id],
			Bytes:        len(text),
		})
	}

	return stats
}

func compileExcludes(patterns []string) ([]*regexp.Regexp, error) {
	filters := make([]*regexp.Regexp, 0, len(patterns))

	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}

		filters = append(filters, re)
	}

	return filters, nil
}

func matchesAny(filters []*regexp.Regexp, s string) bool {
	for _, re := range filters {
		if re.MatchString(s) {
			return true
		}
	}

	return false
}
