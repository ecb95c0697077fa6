package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
)

const (
	metadataFile   = "metadata.json"
	operationsFile = "operations.csv"
)

// ErrNoRun is returned when a run directory or its metadata does not exist.
var ErrNoRun = errors.New("storage: run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Algorithm string    `json:"algorithm"`
	Timestamp time.Time `json:"timestamp"`
	Seed      uint64    `json:"seed"`
	Count     int       `json:"count"`
	Workers   int       `json:"workers"`
	Frames    int       `json:"frames"`
	Swaps     int       `json:"swaps"`
	Compares  int       `json:"compares"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	ElapsedMs int64     `json:"elapsed_ms"`
	Input     []uint32  `json:"input"`
	Output    []uint32  `json:"output"`
}

// Operation is one row of a run's operation log.
type Operation struct {
	Frame     int
	Op        string
	X, Y      int
	Misplaced int
}

// NewRun creates an empty run directory and returns its id. Ids are
// name_<unix millis>, with a -N suffix when that directory already exists.
func (s *Store) NewRun(name string) (string, error) {
	if err := s.Init(); err != nil {
		return "", err
	}

	base := fmt.Sprintf("%s_%d", name, time.Now().UnixMilli())
	runID := base
	for n := 1; ; n++ {
		err := os.Mkdir(s.RunDir(runID), 0755)
		if err == nil {
			return runID, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", err
		}
		runID = fmt.Sprintf("%s-%d", base, n)
	}
}

func (s *Store) RunDir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}

// Frames returns a sink writing frame files into the run directory.
func (s *Store) Frames(runID string) *FrameDir {
	return &FrameDir{dir: s.RunDir(runID)}
}

func (s *Store) Save(meta RunMetadata) error {
	metaFile, err := os.Create(filepath.Join(s.RunDir(meta.ID), metadataFile))
	if err != nil {
		return err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return err
	}
	return metaFile.Close()
}

func (s *Store) SaveOperations(runID string, ops []Operation) error {
	csvFile, err := os.Create(filepath.Join(s.RunDir(runID), operationsFile))
	if err != nil {
		return err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"frame", "op", "x", "y", "misplaced"}); err != nil {
		return err
	}

	for _, op := range ops {
		row := []string{
			strconv.Itoa(op.Frame),
			op.Op,
			strconv.Itoa(op.X),
			strconv.Itoa(op.Y),
			strconv.Itoa(op.Misplaced),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return csvFile.Close()
}

// List returns the metadata of every run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.RunDir(runID), metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoRun, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: decode %s metadata: %w", runID, err)
	}

	return &meta, nil
}

func (s *Store) LoadOperations(runID string) ([]Operation, error) {
	file, err := os.Open(filepath.Join(s.RunDir(runID), operationsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoRun, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 5

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []Operation{}, nil
	}

	ops := make([]Operation, 0, len(records)-1)
	for i, record := range records[1:] {
		var nums [4]int
		for j, field := range []string{record[0], record[2], record[3], record[4]} {
			n, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("storage: %s line %d: %w", operationsFile, i+2, err)
			}
			nums[j] = n
		}
		ops = append(ops, Operation{Frame: nums[0], Op: record[1], X: nums[1], Y: nums[2], Misplaced: nums[3]})
	}

	return ops, nil
}
