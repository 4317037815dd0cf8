package cli

import (
	"errors"

	"github.com/modweave/modweave/internal/compiler"
	"github.com/modweave/modweave/internal/registry"
	"github.com/modweave/modweave/internal/tokens"
)

// Error code for compile failures that carry no more specific code.
const ErrCodeCompile = "C001"

// loadPack loads a pack directory, reporting any failure through the
// formatter and converting it to an ExitError. Load failures (bad path,
// no files) exit 2; compile failures exit 1.
func loadPack(formatter *OutputFormatter, dir string) (*compiler.LoadResult, error) {
	result, err := compiler.LoadDir(dir)
	if err == nil {
		formatter.VerboseLog("Loaded %d CUE file(s) from %s", result.FileCount, dir)
		return result, nil
	}

	var loadErr *compiler.LoadError
	if errors.As(err, &loadErr) {
		_ = formatter.Error(loadErr.Code, loadErr.Message, nil)
		return nil, NewExitError(ExitCommandError, loadErr.Error())
	}

	_ = formatter.Error(ErrCodeCompile, err.Error(), nil)
	return nil, NewExitError(ExitFailure, err.Error())
}

// registerPack applies the pack to a fresh scope context over an empty
// parent. Registration conflicts are reported with their conflict code
// and exit 1.
func registerPack(formatter *OutputFormatter, pack *compiler.PackSpec) (*registry.ScopeContext, error) {
	sc := registry.NewScopeContext(pack.Scope, tokens.Empty)
	if err := compiler.Register(sc, pack); err != nil {
		code := ErrCodeCompile
		if registry.IsRegistrationConflict(err) {
			code = string(registry.ConflictCodeOf(err))
		}
		_ = formatter.Error(code, err.Error(), nil)
		return nil, NewExitError(ExitFailure, err.Error())
	}
	return sc, nil
}
