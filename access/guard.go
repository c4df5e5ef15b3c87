package access

import (
	"github.com/donlabs/feedverify/engine/verifier"
	"github.com/donlabs/feedverify/model/feed"
	"github.com/donlabs/feedverify/state/distribution"
	"github.com/donlabs/feedverify/state/registry"
)

// GuardedRegistry is the administrative mutation API with the capability
// check applied per call.
type GuardedRegistry struct {
	policy   *Policy
	registry *registry.Registry
}

func NewGuardedRegistry(policy *Policy, registry *registry.Registry) *GuardedRegistry {
	return &GuardedRegistry{
		policy:   policy,
		registry: registry,
	}
}

func (g *GuardedRegistry) Set(caller feed.Identity, digest []byte, oracles [][]byte, f int) (uint64, error) {
	if err := g.policy.AuthorizeAdmin(caller, "set configuration"); err != nil {
		return 0, err
	}
	return g.registry.Set(digest, oracles, f)
}

func (g *GuardedRegistry) Activate(caller feed.Identity, digest feed.ConfigDigest) (uint64, error) {
	if err := g.policy.AuthorizeAdmin(caller, "activate configuration"); err != nil {
		return 0, err
	}
	return g.registry.Activate(digest)
}

func (g *GuardedRegistry) Deactivate(caller feed.Identity, digest feed.ConfigDigest) (uint64, error) {
	if err := g.policy.AuthorizeAdmin(caller, "deactivate configuration"); err != nil {
		return 0, err
	}
	return g.registry.Deactivate(digest)
}

// GuardedVerifier is the consumer verification API: a caller must hold a
// consumer grant and a distributed snapshot handle; verification then runs
// against the snapshot the handle carries, not current registry state.
type GuardedVerifier struct {
	policy *Policy
	ledger *distribution.Ledger
	engine *verifier.Engine
}

func NewGuardedVerifier(policy *Policy, ledger *distribution.Ledger, engine *verifier.Engine) *GuardedVerifier {
	return &GuardedVerifier{
		policy: policy,
		ledger: ledger,
		engine: engine,
	}
}

func (g *GuardedVerifier) Verify(caller feed.Identity, reportHex string) (string, error) {
	if err := g.policy.AuthorizeConsumer(caller, "verify report"); err != nil {
		return "", err
	}
	handle, err := g.ledger.HandleFor(caller)
	if err != nil {
		return "", err
	}
	return g.engine.VerifyHex(handle.Snapshot, reportHex)
}
