package core

import (
	"go/types"
	"testing"

	"golang.org/x/tools/go/packages"
)

// TestPersistentStoreImplementations keeps the set of concrete
// domain.PersistentStore backends pinned to the vetted persistence packages.
// Adding a backend elsewhere requires an explicit update here.
func TestPersistentStoreImplementations(t *testing.T) {
	cfg := &packages.Config{Mode: packages.NeedName | packages.NeedTypes, Tests: true}
	pkgs, err := packages.Load(cfg, "synapsecore/...")
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}

	var storeIface *types.Interface
	for _, p := range pkgs {
		if p.PkgPath != "synapsecore/pkg/domain" {
			continue
		}
		obj := p.Types.Scope().Lookup("PersistentStore")
		if obj == nil {
			t.Fatalf("domain.PersistentStore not found")
		}
		iface, ok := obj.Type().Underlying().(*types.Interface)
		if !ok {
			t.Fatalf("domain.PersistentStore is not an interface")
		}
		storeIface = iface
	}
	if storeIface == nil {
		t.Fatalf("failed to resolve PersistentStore interface")
	}

	allowed := map[string]bool{
		"synapsecore/internal/infra/persistence/memory":   true,
		"synapsecore/internal/infra/persistence/sqlite":   true,
		"synapsecore/internal/infra/persistence/postgres": true,
	}
	var unexpected []string
	for _, p := range pkgs {
		if p.Types == nil || p.Types.Scope() == nil {
			continue
		}
		for _, name := range p.Types.Scope().Names() {
			named, ok := p.Types.Scope().Lookup(name).Type().(*types.Named)
			if !ok {
				continue
			}
			if _, ok := named.Underlying().(*types.Struct); !ok {
				continue
			}
			if types.Implements(types.NewPointer(named), storeIface) && !allowed[p.PkgPath] {
				unexpected = append(unexpected, p.PkgPath+"."+name)
			}
		}
	}
	if len(unexpected) > 0 {
		t.Fatalf("unexpected PersistentStore implementations (update the allowed list when adding a backend deliberately): %v", unexpected)
	}
}
