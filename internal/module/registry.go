package module

import (
	"fmt"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/singleflight"
)

// builtinNamespace is the glob every built-in standard-library import path
// falls under ("bishop.json", "bishop.http", ...). Anything matching it is
// resolved from the in-process builtin table and is never handed to the
// external driver's user-module resolver, even if no such builtin exists
// (that's a resolution error, not a fallthrough) — doublestar's glob match
// decides the reserved-namespace boundary the way `termfx-morfx` uses it to
// decide which paths a scoped rule applies to.
const builtinNamespace = "bishop.*"

// ImportResolver resolves a non-built-in (user) dotted import path to a
// Module. The external driver supplies an implementation that reads and
// parses the file from disk (spec.md §4.5: "a user module, parsed from disk
// by the external driver" — out of scope for the compiler core itself).
type ImportResolver interface {
	ResolveUser(path string) (*Module, error)
}

// Registry resolves ImportStmt module paths to Modules, deduplicating
// concurrent resolution of the same path (spec.md §3.5's "module objects
// are shared ... during a compile", generalized to safe concurrent sharing
// across files via singleflight, grounded on golang.org/x/sync's use in the
// pack for exactly this "resolve once, fan in" shape).
type Registry struct {
	builtins map[string]*Module
	user     ImportResolver
	group    singleflight.Group

	mu       sync.Mutex
	resolved map[string]*Module // cache: the same Module pointer is handed out on every subsequent Resolve of the same path
}

// NewRegistry builds a Registry with every built-in standard module
// pre-registered (spec.md §1's 15 built-ins).
func NewRegistry() *Registry {
	r := &Registry{builtins: map[string]*Module{}, resolved: map[string]*Module{}}
	for _, m := range allBuiltins() {
		r.builtins[m.Path] = m
	}
	return r
}

// SetUserResolver installs the external driver's user-module resolver.
// Resolve returns an error for any non-built-in path until this is called.
func (r *Registry) SetUserResolver(ir ImportResolver) { r.user = ir }

// Resolve returns the Module for a dotted import path, trying the built-in
// table first (for any path under the reserved "bishop.*" namespace) and
// falling back to the installed ImportResolver otherwise. The same *Module
// pointer is returned for every call with the same path during this
// Registry's lifetime (spec.md §3.5's "module objects are shared... during
// a compile"); singleflight.Group collapses concurrent first-resolutions of
// the same path into a single call to the (possibly expensive) user
// resolver.
func (r *Registry) Resolve(path string) (*Module, error) {
	r.mu.Lock()
	if m, ok := r.resolved[path]; ok {
		r.mu.Unlock()
		return m, nil
	}
	r.mu.Unlock()

	v, err, _ := r.group.Do(path, func() (any, error) {
		r.mu.Lock()
		cached, ok := r.resolved[path]
		r.mu.Unlock()
		if ok {
			return cached, nil
		}
		m, err := r.resolveOnce(path)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.resolved[path] = m
		r.mu.Unlock()
		return m, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Module), nil
}

func (r *Registry) resolveOnce(path string) (*Module, error) {
	matched, _ := doublestar.Match(builtinNamespace, path)
	if matched {
		m, ok := r.builtins[path]
		if !ok {
			return nil, fmt.Errorf("module: no built-in module %q (reserved namespace %q)", path, builtinNamespace)
		}
		return m, nil
	}
	if r.user == nil {
		return nil, fmt.Errorf("module: no user module resolver installed, cannot resolve %q", path)
	}
	return r.user.ResolveUser(path)
}

// BuiltinPath qualifies a bare standard-library module name ("json") into
// its reserved import path ("bishop.json").
func BuiltinPath(name string) string {
	if strings.HasPrefix(name, "bishop.") {
		return name
	}
	return "bishop." + name
}

// DefaultAlias is the alias an `import module.path;` with no explicit `as`
// clause binds to: the last dotted segment of the path (spec.md §4.5:
// "import bishop.json;" binds the name "json").
func DefaultAlias(path string) string {
	idx := strings.LastIndexByte(path, '.')
	if idx < 0 {
		return path
	}
	return path[idx+1:]
}
