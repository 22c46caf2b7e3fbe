package contracts

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
	"github.com/trebuchet-org/icodeploy/internal/domain"
	"github.com/trebuchet-org/icodeploy/internal/domain/config"
)

// maxSuggestions bounds the "did you mean" list
const maxSuggestions = 3

// BuildFunc compiles the project when no artifacts exist yet
type BuildFunc func(ctx context.Context, projectRoot string) error

// Indexer discovers compiled contract artifacts
type Indexer struct {
	projectRoot   string
	artifactDirs  []string
	build         BuildFunc
	contracts     map[string]*domain.Artifact   // key: "path:Name"
	contractNames map[string][]*domain.Artifact // key: contract name
	indexed       bool
	mu            sync.RWMutex
}

// NewIndexer creates an indexer over the Foundry out dir and Hardhat artifacts dir
func NewIndexer(cfg *config.RuntimeConfig) *Indexer {
	return NewIndexerWithBuild(cfg.ProjectRoot, []string{cfg.OutDir(), "artifacts"}, ForgeBuild)
}

// NewIndexerWithBuild creates an indexer with explicit artifact dirs and build step
func NewIndexerWithBuild(projectRoot string, artifactDirs []string, build BuildFunc) *Indexer {
	return &Indexer{
		projectRoot:   projectRoot,
		artifactDirs:  artifactDirs,
		build:         build,
		contracts:     make(map[string]*domain.Artifact),
		contractNames: make(map[string][]*domain.Artifact),
	}
}

// Index discovers all deployable artifacts, building the project first if needed
func (i *Indexer) Index(ctx context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.contracts = make(map[string]*domain.Artifact)
	i.contractNames = make(map[string][]*domain.Artifact)

	dirs := i.existingDirs()
	if len(dirs) == 0 && i.build != nil {
		if err := i.build(ctx, i.projectRoot); err != nil {
			return fmt.Errorf("failed to build contracts: %w", err)
		}
		dirs = i.existingDirs()
	}
	if len(dirs) == 0 {
		return fmt.Errorf("no artifacts found in %s", strings.Join(i.artifactDirs, ", "))
	}

	for _, dir := range dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if d.Name() == "build-info" {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) != ".json" || strings.HasSuffix(path, ".dbg.json") {
				return nil
			}

			artifact, err := loadArtifact(path)
			if err != nil {
				return err
			}
			if artifact != nil {
				i.add(artifact)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to index %s: %w", dir, err)
		}
	}

	i.indexed = true
	return nil
}

func (i *Indexer) existingDirs() []string {
	var dirs []string
	for _, dir := range i.artifactDirs {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(i.projectRoot, dir)
		}
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// add indexes an artifact. The first artifact seen for a path:Name wins, so
// a project built by both toolchains doesn't report itself as ambiguous.
func (i *Indexer) add(artifact *domain.Artifact) {
	key := artifact.Key()
	if _, exists := i.contracts[key]; exists {
		return
	}
	i.contracts[key] = artifact
	i.contractNames[artifact.Name] = append(i.contractNames[artifact.Name], artifact)
}

// GetContract retrieves a contract by name or path:name
func (i *Indexer) GetContract(ctx context.Context, key string) (*domain.Artifact, error) {
	i.mu.RLock()
	indexed := i.indexed
	i.mu.RUnlock()

	if !indexed {
		if err := i.Index(ctx); err != nil {
			return nil, err
		}
	}

	i.mu.RLock()
	defer i.mu.RUnlock()

	if strings.Contains(key, ":") {
		if artifact, ok := i.contracts[key]; ok {
			return artifact, nil
		}
		return nil, domain.ContractNotFoundErr{Name: key, Suggestions: i.suggest(key[strings.LastIndex(key, ":")+1:])}
	}

	matches := i.contractNames[key]
	switch len(matches) {
	case 0:
		return nil, domain.ContractNotFoundErr{Name: key, Suggestions: i.suggest(key)}
	case 1:
		return matches[0], nil
	default:
		return nil, domain.AmbiguousContractErr{Name: key, Matches: matches}
	}
}

// suggest returns indexed names that fuzzily match name
func (i *Indexer) suggest(name string) []string {
	names := lo.Keys(i.contractNames)
	sort.Strings(names)

	matches := fuzzy.Find(name, names)
	suggestions := make([]string, 0, maxSuggestions)
	for _, match := range matches {
		if len(suggestions) == maxSuggestions {
			break
		}
		suggestions = append(suggestions, match.Str)
	}
	return suggestions
}

// ForgeBuild runs `forge build` in the project root
func ForgeBuild(ctx context.Context, projectRoot string) error {
	cmd := exec.CommandContext(ctx, "forge", "build")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("forge build failed: %w\n%s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
