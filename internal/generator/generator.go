package generator

import (
	"go.uber.org/zap"

	"github.com/launchbynttdata/go-pkginfo/internal/metadata"
)

// Request describes one generation pass.
type Request struct {
	Decl          TypeDecl
	EnvPrefix     string
	DeriveVersion bool
	Options       Options
}

// Generator bakes looked-up metadata into accessor implementations.
type Generator struct {
	logger *zap.Logger
	lookup metadata.LookupFunc
}

// New creates a Generator. A nil lookup reads the process environment.
func New(logger *zap.Logger, lookup metadata.LookupFunc) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if lookup == nil {
		lookup = metadata.EnvLookup
	}
	return &Generator{logger: logger, lookup: lookup}
}

// Generate reads every metadata variable once and renders the implementation for req.Decl.
func (g *Generator) Generate(req Request) ([]byte, error) {
	rec := metadata.Load(req.EnvPrefix, g.lookup)

	if req.DeriveVersion {
		derived, err := metadata.DeriveVersion(rec)
		if err != nil {
			g.logger.Warn("version components not derived", zap.String("version", rec.Version), zap.Error(err))
		} else {
			rec = derived
		}
	}

	log := g.logger.With(zap.String("type", req.Decl.Signature()), zap.String("package", req.Decl.Package))
	present := 0
	for _, f := range metadata.Fields() {
		value, ok := rec.Get(f)
		if ok {
			present++
			log.Debug("baking value", zap.String("field", f.Method()), zap.String("env", f.EnvKey(req.EnvPrefix)), zap.String("value", value))
			continue
		}
		log.Debug("value absent", zap.String("field", f.Method()), zap.String("env", f.EnvKey(req.EnvPrefix)))
	}

	out, err := Render(req.Decl, rec, req.Options)
	if err != nil {
		return nil, err
	}
	log.Info("accessors generated", zap.Int("present", present), zap.Int("absent", len(metadata.Fields())-present))
	return out, nil
}
