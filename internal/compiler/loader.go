package compiler

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
)

// LoadError reports a failure to load pack files before compilation could
// start (missing directory, no files, CUE build failure).
type LoadError struct {
	Code    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Load error codes.
const (
	ErrCodeNotFound    = "L001" // path not found or not a directory
	ErrCodeNoFiles     = "L002" // no CUE files in directory
	ErrCodeLoadFailed  = "L003" // CUE instance load failed
	ErrCodeBuildFailed = "L004" // CUE value build failed
	ErrCodeNoPack      = "L005" // no pack struct in loaded value
)

// LoadResult carries a loaded pack plus its cycle diagnostics.
type LoadResult struct {
	Pack      *PackSpec
	Warnings  []CycleWarning
	FileCount int
}

// LoadDir loads every .cue file in a directory as one CUE instance,
// compiles the pack struct, and runs cycle analysis.
func LoadDir(dir string) (*LoadResult, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("pack directory not found: %s", dir)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing pack directory: %v", err)}
	}
	if !info.IsDir() {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}
	}

	cueFiles, err := findCUEFiles(dir)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error scanning directory: %v", err)}
	}
	if len(cueFiles) == 0 {
		return nil, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}
	}

	instances := load.Instances([]string{"."}, &load.Config{Dir: dir, Package: "_"})
	if len(instances) == 0 {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}
	}

	value := cuecontext.New().BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}
	}

	packVal := value.LookupPath(cue.ParsePath("pack"))
	if !packVal.Exists() {
		return nil, &LoadError{Code: ErrCodeNoPack, Message: "no pack struct found in CUE files"}
	}

	spec, err := CompilePack(packVal)
	if err != nil {
		return nil, err
	}

	return &LoadResult{
		Pack:      spec,
		Warnings:  AnalyzeCycles(spec),
		FileCount: len(cueFiles),
	}, nil
}

// findCUEFiles walks the directory and returns all .cue file paths.
func findCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
