// Package keywords holds the role keyword packs and the coverage analyzer
// that measures how well a document covers a role's expectations.
package keywords

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/fairyhunter13/cv-feedback/internal/domain"
)

// DefaultRole is used when a role id is empty or unknown.
const DefaultRole = "software_engineer"

// Pack is the keyword definition set of one role.
type Pack struct {
	ID       string                     `yaml:"id" json:"id"`
	Label    string                     `yaml:"label" json:"label"`
	Aliases  []string                   `yaml:"aliases" json:"aliases,omitempty"`
	Keywords []domain.KeywordDefinition `yaml:"keywords" json:"keywords"`

	matchers []matcher
}

// matcher is the compiled form of one keyword definition.
type matcher struct {
	def domain.KeywordDefinition
	res []*regexp.Regexp
}

// matches reports whether any pattern or synonym matches s.
func (m matcher) matches(s string) bool {
	if s == "" {
		return false
	}
	for _, re := range m.res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// matchedChars sums the rune length of every pattern and synonym match in s.
func (m matcher) matchedChars(s string) int {
	if s == "" {
		return 0
	}
	n := 0
	for _, re := range m.res {
		for _, loc := range re.FindAllStringIndex(s, -1) {
			n += utf8.RuneCountInString(s[loc[0]:loc[1]])
		}
	}
	return n
}

// Registry is an immutable, role-keyed table of keyword packs. It is safe to
// share between concurrent analyses.
type Registry struct {
	packs       map[string]Pack
	aliases     map[string]string
	order       []string
	defaultRole string
}

// NewRegistry compiles the given packs. Later packs replace earlier packs
// with the same id.
func NewRegistry(defaultRole string, packs ...Pack) (*Registry, error) {
	r := &Registry{
		packs:   make(map[string]Pack, len(packs)),
		aliases: make(map[string]string),
	}
	for _, p := range packs {
		id := canonical(p.ID)
		if id == "" {
			return nil, fmt.Errorf("%w: keyword pack without id", domain.ErrInvalidArgument)
		}
		compiled, err := compilePack(p)
		if err != nil {
			return nil, fmt.Errorf("op=keywords.NewRegistry pack=%s: %w", id, err)
		}
		compiled.ID = id
		if _, exists := r.packs[id]; !exists {
			r.order = append(r.order, id)
		}
		r.packs[id] = compiled
		for _, a := range p.Aliases {
			r.aliases[canonical(a)] = id
		}
	}
	def := canonical(defaultRole)
	if target, ok := r.aliases[def]; ok {
		if _, isPack := r.packs[def]; !isPack {
			def = target
		}
	}
	if _, ok := r.packs[def]; !ok {
		return nil, fmt.Errorf("%w: default role %q has no keyword pack", domain.ErrInvalidArgument, defaultRole)
	}
	r.defaultRole = def
	return r, nil
}

// DefaultRegistry returns the registry of built-in packs.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(DefaultRole, builtinPacks()...)
	if err != nil {
		// Built-in packs are static; failing here is a programming error.
		panic(err)
	}
	return r
}

// NewBuiltinRegistry compiles the built-in packs overlaid by extra, falling
// back to defaultRole (or DefaultRole when empty) for unknown role ids.
func NewBuiltinRegistry(defaultRole string, extra ...Pack) (*Registry, error) {
	if strings.TrimSpace(defaultRole) == "" {
		defaultRole = DefaultRole
	}
	return NewRegistry(defaultRole, append(builtinPacks(), extra...)...)
}

// With returns a new registry holding the receiver's packs overlaid by extra.
func (r *Registry) With(extra ...Pack) (*Registry, error) {
	all := make([]Pack, 0, len(r.order)+len(extra))
	for _, id := range r.order {
		all = append(all, r.packs[id])
	}
	all = append(all, extra...)
	return NewRegistry(r.defaultRole, all...)
}

// Normalize maps a free-form role id onto a registered role id. Aliases
// resolve to their canonical id; unknown ids fall back to the default role.
func (r *Registry) Normalize(roleID string) string {
	id := canonical(roleID)
	if _, ok := r.packs[id]; ok {
		return id
	}
	if target, ok := r.aliases[id]; ok {
		return target
	}
	return r.defaultRole
}

// Pack returns the pack for a (possibly unnormalized) role id.
func (r *Registry) Pack(roleID string) Pack {
	return r.packs[r.Normalize(roleID)]
}

// Roles returns the registered packs ordered by id.
func (r *Registry) Roles() []Pack {
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	sort.Strings(ids)
	out := make([]Pack, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.packs[id])
	}
	return out
}

// DefaultRoleID returns the fallback role id.
func (r *Registry) DefaultRoleID() string { return r.defaultRole }

// packsYAML is the on-disk layout of a keyword pack override file.
type packsYAML struct {
	Packs []Pack `yaml:"packs"`
}

// LoadPacks reads keyword packs from a YAML file.
func LoadPacks(path string) ([]Pack, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}
	// #nosec G304 -- Configuration files are expected to be safe
	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read keyword packs: %w", err)
	}
	var doc packsYAML
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(doc.Packs) == 0 {
		return nil, fmt.Errorf("no packs found in keyword file: %s", path)
	}
	return doc.Packs, nil
}

func canonical(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	id = strings.NewReplacer("-", "_", " ", "_").Replace(id)
	return id
}

func compilePack(p Pack) (Pack, error) {
	out := p
	out.Keywords = append([]domain.KeywordDefinition(nil), p.Keywords...)
	out.matchers = make([]matcher, 0, len(p.Keywords))
	seen := make(map[string]bool, len(p.Keywords))
	for _, def := range p.Keywords {
		if def.Key == "" || seen[def.Key] {
			return Pack{}, fmt.Errorf("%w: duplicate or empty keyword key %q", domain.ErrInvalidArgument, def.Key)
		}
		seen[def.Key] = true
		switch def.Tier {
		case domain.TierCritical, domain.TierStrong, domain.TierNice:
		default:
			return Pack{}, fmt.Errorf("%w: keyword %q has unknown tier %q", domain.ErrInvalidArgument, def.Key, def.Tier)
		}
		m := matcher{def: def}
		for _, pat := range def.Patterns {
			re, err := regexp.Compile("(?i)" + pat)
			if err != nil {
				return Pack{}, fmt.Errorf("keyword %q pattern %q: %w", def.Key, pat, err)
			}
			m.res = append(m.res, re)
		}
		for _, syn := range def.Synonyms {
			m.res = append(m.res, phrasePattern(syn))
		}
		if len(m.res) == 0 {
			return Pack{}, fmt.Errorf("%w: keyword %q has no patterns", domain.ErrInvalidArgument, def.Key)
		}
		out.matchers = append(out.matchers, m)
	}
	return out, nil
}

// phrasePattern matches a literal phrase bounded by non-alphanumerics, so
// "node.js" or "c#" can be listed as synonyms without regex escaping.
func phrasePattern(phrase string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:^|[^a-z0-9])` + regexp.QuoteMeta(strings.TrimSpace(phrase)) + `(?:$|[^a-z0-9+#])`)
}
