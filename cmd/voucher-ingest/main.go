// Command voucher-ingest compiles a voucher definition table from raw
// promo-code dumps. Marketing exports arrive as large gzipped files of
// one code per line; a code is considered issued only when it appears in
// at least two of the three dumps. Discovered codes are written as a
// vouchers.json file for the pricing server.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/bits"
	"os"
	"os/signal"
	"path/filepath"
	"sort"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	pgzip "github.com/klauspost/pgzip"
	"golang.org/x/sync/errgroup"
)

const (
	bloomCapacity = 120_000_000
	bloomFPR      = 0.001
	numFiles      = 3
	progressEvery = 10_000_000
	minCodeLen    = 8
	maxCodeLen    = 10
)

// codeRule describes the voucher definition to emit for a known code.
type codeRule struct {
	percentage   string
	maxDiscount  string
	tier         string
	minCartValue string
}

var codeRules = map[string]codeRule{
	"SUPERSALE": {percentage: "69", maxDiscount: "1000"},
	"PREMPLUS0": {percentage: "20", maxDiscount: "500", tier: "premium", minCartValue: "1000"},
	"NEWUSER15": {percentage: "15", maxDiscount: "300", minCartValue: "500"},
	"TIERBONUS": {percentage: "30", maxDiscount: "800", tier: "regular", minCartValue: "2000"},
	"GNULINUX0": {percentage: "15", maxDiscount: "250"},
	"HAPPYHRS0": {percentage: "18", maxDiscount: "400"},
}

var defaultRule = codeRule{
	percentage:  "10",
	maxDiscount: "100",
}

// fileResult holds candidate codes found in a single file during pass 2.
type fileResult struct {
	candidates map[string]uint
}

func main() {
	var (
		dataDir string
		outFile string
	)

	flag.StringVar(&dataDir, "data-dir", "data", "directory containing voucherbaseN.gz files")
	flag.StringVar(&outFile, "out", "vouchers.json", "output path for the voucher definitions JSON")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, dataDir, outFile); err != nil {
		slog.Error("voucher ingest failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("voucher ingest completed successfully")
}

func run(ctx context.Context, dataDir, outFile string) error {
	files := make([]string, numFiles)
	for i := range numFiles {
		files[i] = filepath.Join(dataDir, fmt.Sprintf("voucherbase%d.gz", i+1))
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			return errors.Wrapf(err, "check file %s", f)
		}
	}

	// Pass 1: Build bloom filters concurrently.
	slog.Info("pass 1: building bloom filters", slog.Int("files", numFiles))

	filters, err := buildBloomFilters(ctx, files)
	if err != nil {
		return errors.Wrap(err, "build bloom filters")
	}

	// Pass 2: Find candidate codes appearing in 2+ files.
	slog.Info("pass 2: finding candidate codes")

	validCodes, err := findValidCodes(ctx, files, filters)
	if err != nil {
		return errors.Wrap(err, "find valid codes")
	}

	slog.Info("valid codes found", slog.Int("count", len(validCodes)))

	if len(validCodes) == 0 {
		slog.Info("no valid codes to write")
		return nil
	}

	if err := writeVouchers(outFile, validCodes); err != nil {
		return errors.Wrap(err, "write voucher definitions")
	}

	return nil
}

// buildBloomFilters streams each file once and builds one bloom filter
// per file.
func buildBloomFilters(ctx context.Context, files []string) ([]*bloom.BloomFilter, error) {
	filters := make([]*bloom.BloomFilter, len(files))

	g, ctx := errgroup.WithContext(ctx)
	for i, f := range files {
		g.Go(buildFilterForFile(ctx, i, f, filters))
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return filters, nil
}

func buildFilterForFile(ctx context.Context, idx int, path string, filters []*bloom.BloomFilter) func() error {
	return func() error {
		filter := bloom.NewWithEstimates(bloomCapacity, bloomFPR)
		var count uint64

		if err := streamGzFile(ctx, path, func(code string) {
			if len(code) >= minCodeLen && len(code) <= maxCodeLen {
				filter.AddString(code)
				count++
				if count%progressEvery == 0 {
					slog.Info("pass 1 progress",
						slog.Int("file", idx+1),
						slog.Uint64("codes", count),
					)
				}
			}
		}); err != nil {
			return errors.Wrapf(err, "build filter for file %d", idx+1)
		}

		slog.Info("pass 1 complete",
			slog.Int("file", idx+1),
			slog.Uint64("total_codes", count),
		)

		filters[idx] = filter
		return nil
	}
}

// findValidCodes re-streams each file and checks codes against OTHER
// files' bloom filters. A code is valid if it appears in 2 or more files.
func findValidCodes(ctx context.Context, files []string, filters []*bloom.BloomFilter) ([]string, error) {
	results := make([]fileResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	for i, f := range files {
		g.Go(findCandidatesInFile(ctx, i, f, filters, results))
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Merge bitmasks from all files.
	merged := make(map[string]uint)
	for _, r := range results {
		for code, mask := range r.candidates {
			merged[code] |= mask
		}
	}

	// Keep codes appearing in 2+ files.
	var valid []string
	for code, mask := range merged {
		if bits.OnesCount(mask) >= 2 {
			valid = append(valid, code)
		}
	}

	// Stable output order keeps the emitted table diffable.
	sort.Strings(valid)

	return valid, nil
}

func findCandidatesInFile(
	ctx context.Context,
	idx int,
	path string,
	filters []*bloom.BloomFilter,
	results []fileResult,
) func() error {
	return func() error {
		candidates := make(map[string]uint)
		fileBit := uint(1) << uint(idx)
		var count uint64

		if err := streamGzFile(ctx, path, func(code string) {
			if len(code) < minCodeLen || len(code) > maxCodeLen {
				return
			}

			count++
			if count%progressEvery == 0 {
				slog.Info("pass 2 progress",
					slog.Int("file", idx+1),
					slog.Uint64("codes", count),
				)
			}

			// Check if this code appears in any OTHER file's bloom filter.
			for j, f := range filters {
				if j == idx {
					continue
				}
				if f.TestString(code) {
					candidates[code] |= fileBit
					break
				}
			}
		}); err != nil {
			return errors.Wrapf(err, "scan file %d for candidates", idx+1)
		}

		slog.Info("pass 2 complete",
			slog.Int("file", idx+1),
			slog.Uint64("total_codes", count),
			slog.Int("candidates", len(candidates)),
		)

		results[idx] = fileResult{candidates: candidates}
		return nil
	}
}

// streamGzFile opens a gzip-compressed file and calls fn for each line.
func streamGzFile(ctx context.Context, path string, fn func(code string)) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	gz, err := pgzip.NewReader(f)
	if err != nil {
		return errors.Wrapf(err, "create gzip reader for %s", path)
	}
	defer func() { _ = gz.Close() }()

	scanner := bufio.NewScanner(gz)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		fn(scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "scan %s", path)
	}

	return nil
}

// writeVouchers emits the voucher definitions as a JSON array the
// pricing server loads at startup.
func writeVouchers(path string, codes []string) error {
	slog.Info("writing voucher definitions", slog.Int("count", len(codes)), slog.String("path", path))

	var e jx.Encoder
	e.SetIdent(2)
	e.ArrStart()
	for _, code := range codes {
		rule, ok := codeRules[code]
		if !ok {
			rule = defaultRule
		}
		encodeVoucher(&e, code, rule)
	}
	e.ArrEnd()

	if err := os.WriteFile(path, e.Bytes(), 0o644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}

	return nil
}

func encodeVoucher(e *jx.Encoder, code string, rule codeRule) {
	e.ObjStart()
	e.FieldStart("code")
	e.Str(code)
	e.FieldStart("percentage")
	e.Str(rule.percentage)
	e.FieldStart("max_discount")
	e.Str(rule.maxDiscount)
	if rule.tier != "" {
		e.FieldStart("tier_requirement")
		e.Str(rule.tier)
	}
	e.FieldStart("min_cart_value")
	if rule.minCartValue != "" {
		e.Str(rule.minCartValue)
	} else {
		e.Str("0")
	}
	e.ObjEnd()
}
