package site

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/vaultsite/internal/config"
	ferrors "git.home.luguber.info/inful/vaultsite/internal/foundation/errors"
	"git.home.luguber.info/inful/vaultsite/internal/graph"
	"git.home.luguber.info/inful/vaultsite/internal/logfields"
	"git.home.luguber.info/inful/vaultsite/internal/output"
)

const (
	graphScript    = "graph_info.js"
	settingsScript = "settings.js"
)

func (r *run) writeGraph(g graph.Graph) error {
	var buf bytes.Buffer
	opts := r.cfg.Options
	if err := graph.WriteScript(&buf, g, opts.IsTrue(config.OptLocalGraph), opts.IsTrue(config.OptGraphLinkReplace)); err != nil {
		return ferrors.GraphError("failed to encode graph").WithCause(err).Build()
	}
	dest := filepath.Join(r.cfg.StaticDir(), graphScript)
	if err := output.WriteFileAtomic(dest, buf.Bytes()); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write graph script").
			Fatal().WithContext("dest", dest).Build()
	}
	return nil
}

func (r *run) writeSettings() error {
	content := fmt.Sprintf("var sidebar_collapsed=%t", r.cfg.Options.IsTrue(config.OptSidebarCollapsed))
	dest := filepath.Join(r.cfg.StaticDir(), settingsScript)
	if err := output.WriteFileAtomic(dest, []byte(content)); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write settings script").
			Fatal().WithContext("dest", dest).Build()
	}
	return nil
}

// substitute fills ___KEY___ placeholders in the configured site files.
// Missing files are skipped.
func (r *run) substitute() error {
	for _, rel := range r.cfg.SubstituteFiles {
		abs := rel
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(r.cfg.Paths.Site, rel)
		}
		data, err := os.ReadFile(abs)
		if os.IsNotExist(err) {
			r.logger.Debug("No file to substitute", logfields.Path(rel))
			continue
		}
		if err != nil {
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to read template file").
				Fatal().WithContext("path", rel).Build()
		}
		out := r.cfg.Substitute(string(data))
		if out == string(data) {
			continue
		}
		if err := output.WriteFileAtomic(abs, []byte(out)); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write template file").
				Fatal().WithContext("path", rel).Build()
		}
		r.logger.Info("Substituted site options", logfields.Path(rel))
	}
	return nil
}
