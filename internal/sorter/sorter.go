package sorter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"syscall"

	"github.com/google/uuid"

	"chlog/internal/feed"
	"chlog/internal/logging"
	"chlog/internal/match"
	"chlog/internal/services"
)

// Sorter reconciles downloaded audio files against feed episodes and moves
// them into per-year subdirectories.
type Sorter struct {
	logger *slog.Logger
}

// New constructs a sorter. A nil logger disables logging.
func New(logger *slog.Logger) *Sorter {
	return &Sorter{logger: logging.NewComponentLogger(logger, "sorter")}
}

type matchedFile struct {
	name    string
	episode feed.Episode
}

// OrganizeFeed parses the feed document at feedPath and organizes the audio
// files found in folder. A malformed document or a feed with zero parseable
// episodes fails before any file is touched.
func (s *Sorter) OrganizeFeed(ctx context.Context, feedPath, folder string, dryRun bool) (*Report, error) {
	logger := logging.WithContext(ctx, s.logger)
	logger.Info("parsing feed", logging.String("feed", feedPath))

	episodes, err := feed.NewParser(s.logger).ParseFile(feedPath)
	if err != nil {
		return nil, err
	}
	if len(episodes) == 0 {
		return nil, services.Wrap(services.ErrEmptyFeed, "sorting", "parse feed", "no parseable episodes in feed", nil)
	}
	logger.Info("feed parsed", logging.Int("episodes", len(episodes)))

	return s.Organize(ctx, episodes, folder, dryRun)
}

// Organize matches every audio file directly inside folder to an episode,
// groups matches by publication year, and moves each file into its year
// subdirectory. Unmatched files are left untouched. In dry-run mode the match
// and grouping phases run unchanged but no directory is created and no file
// is moved.
func (s *Sorter) Organize(ctx context.Context, episodes []feed.Episode, folder string, dryRun bool) (*Report, error) {
	logger := logging.WithContext(ctx, s.logger)

	info, err := os.Stat(folder)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "sorting", "inspect folder", fmt.Sprintf("podcast folder %s does not exist", folder), err)
	}
	if !info.IsDir() {
		return nil, services.Wrap(services.ErrValidation, "sorting", "inspect folder", fmt.Sprintf("%s is not a directory", folder), nil)
	}

	files, err := listAudioFiles(folder)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "sorting", "list folder", "cannot read podcast folder", err)
	}
	logger.Info("found audio files", logging.Int("total", len(files)))

	report := newReport(runID(ctx), dryRun)
	report.TotalFiles = len(files)

	groups := map[int][]matchedFile{}
	for _, name := range files {
		episode, ok := match.Match(name, episodes)
		if !ok {
			report.Unmatched = append(report.Unmatched, name)
			logger.Debug("no episode matched", logging.String("file", name))
			continue
		}
		groups[episode.Year] = append(groups[episode.Year], matchedFile{name: name, episode: episode})
		report.Matched++
		report.YearCounts[episode.Year]++
	}

	if dryRun {
		logger.Info("dry run, skipping moves",
			logging.Int("matched", report.Matched),
			logging.Int("unmatched", len(report.Unmatched)),
		)
		return report, nil
	}

	years := make([]int, 0, len(groups))
	for year := range groups {
		years = append(years, year)
	}
	sort.Ints(years)

	for _, year := range years {
		yearDir := filepath.Join(folder, strconv.Itoa(year))
		if err := os.MkdirAll(yearDir, 0o755); err != nil {
			// Every file destined for this year would fail; count them and
			// keep going with the next year.
			logger.Warn("cannot create year directory", logging.String("dir", yearDir), logging.Error(err))
			report.Errors += len(groups[year])
			continue
		}
		logger.Info("processing year", logging.Int("year", year), logging.Int("files", len(groups[year])))

		for _, mf := range groups[year] {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			source := filepath.Join(folder, mf.name)
			dest := filepath.Join(yearDir, mf.name)

			if _, err := os.Stat(dest); err == nil {
				// Same name already organized; leave the original in place
				// rather than silently overwrite distinct content.
				report.Skipped++
				logger.Info("skipping existing destination", logging.String("file", mf.name), logging.Int("year", year))
				continue
			}

			if err := moveFile(source, dest); err != nil {
				report.Errors++
				logger.Warn("move failed", logging.String("file", mf.name), logging.Error(err))
				continue
			}
			report.Moved++
			logger.Info("moved", logging.String("file", mf.name), logging.Int("year", year))
		}
	}

	return report, nil
}

func listAudioFiles(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if match.IsAudioFile(entry.Name()) {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// moveFile renames source to dest, falling back to copy-and-remove when the
// destination is on a different filesystem.
func moveFile(source, dest string) error {
	renameErr := os.Rename(source, dest)
	if renameErr == nil {
		return nil
	}
	var linkErr *os.LinkError
	if errors.As(renameErr, &linkErr) && errors.Is(linkErr.Err, syscall.EXDEV) {
		if err := copyFile(source, dest); err != nil {
			return err
		}
		return os.Remove(source)
	}
	return renameErr
}

func copyFile(source, dest string) error {
	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

func runID(ctx context.Context) string {
	if id, ok := services.RunIDFromContext(ctx); ok {
		return id
	}
	return uuid.NewString()
}
