// Package graph builds company relationship networks from Companies House
// data: a seed company, its officers and PSCs, and the other companies those
// officers are appointed at.
package graph

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"sync"
	"time"

	"github.com/alfredjeanlab/corpnet/internal/companieshouse"
	"github.com/alfredjeanlab/corpnet/internal/idgen"
	"github.com/alfredjeanlab/corpnet/internal/model"
)

// Options bound a network build. Zero values fall back to the defaults below.
type Options struct {
	// MaxOfficers caps how many of the seed's officers are expanded, picked
	// by appointment recency.
	MaxOfficers int

	// MaxCompanies is the ceiling K on expanded company nodes (the seed is
	// not counted). Discovery beyond K truncates deterministically.
	MaxCompanies int

	// Workers bounds concurrent appointment lookups. Capped at maxWorkers to
	// stay inside the registry's rate limits.
	Workers int
}

const (
	defaultMaxOfficers  = 10
	defaultMaxCompanies = 10
	defaultWorkers      = 4
	maxWorkers          = 5
)

// WithDefaults returns a copy with zero values replaced by the defaults and
// Workers capped. Callers that need the effective bounds before a build (for
// request clamping) use the same resolution Build applies.
func (o Options) WithDefaults() Options {
	if o.MaxOfficers <= 0 {
		o.MaxOfficers = defaultMaxOfficers
	}
	if o.MaxCompanies <= 0 {
		o.MaxCompanies = defaultMaxCompanies
	}
	if o.Workers <= 0 {
		o.Workers = defaultWorkers
	}
	if o.Workers > maxWorkers {
		o.Workers = maxWorkers
	}
	return o
}

// Builder constructs networks through a Companies House client. Builders are
// stateless; one can serve concurrent builds.
type Builder struct {
	client companieshouse.Client
}

// NewBuilder returns a Builder over the given client.
func NewBuilder(client companieshouse.Client) *Builder {
	return &Builder{client: client}
}

// companyNumberPattern matches the registration number formats the registry
// issues: 8 digits, or a 2-letter prefix (SC, NI, OC, ...) plus 6 digits.
var companyNumberPattern = regexp.MustCompile(`^(\d{8}|[A-Za-z]{2}\d{6})$`)

// LooksLikeCompanyNumber reports whether the query can be used for a direct
// profile lookup instead of a name search.
func LooksLikeCompanyNumber(query string) bool {
	return companyNumberPattern.MatchString(query)
}

// build accumulates state for a single Build call. A single goroutine owns it;
// concurrent expansion results arrive through a channel.
type build struct {
	opts     Options
	network  *model.Network
	nodes    map[string]*model.Node
	apiCalls int
}

// expansion is the outcome of one officer's appointment lookup.
type expansion struct {
	officer *model.Officer
	appts   []*model.Appointment
	err     error
}

// Build resolves the seed query and expands it into a network. Only seed
// resolution failure is fatal; every later lookup failure is recorded in the
// result's Failures and the build carries on.
func (b *Builder) Build(ctx context.Context, query string, opts Options) (*model.Network, error) {
	opts = opts.WithDefaults()

	buildID, err := idgen.Generate()
	if err != nil {
		return nil, fmt.Errorf("generating build id: %w", err)
	}

	st := &build{
		opts:  opts,
		nodes: make(map[string]*model.Node),
		network: &model.Network{
			Meta: model.NetworkMeta{
				BuildID:   buildID,
				Query:     query,
				StartedAt: time.Now().UTC(),
			},
		},
	}

	seed, err := b.resolveSeed(ctx, st, query)
	if err != nil {
		return nil, fmt.Errorf("resolving seed %q: %w", query, err)
	}
	st.network.Meta.SeedNumber = seed.CompanyNumber
	st.addNode(&model.Node{
		ID:      model.CompanyNodeID(seed.CompanyNumber),
		Type:    model.NodeCompany,
		Label:   seed.CompanyName,
		Company: seed,
	})

	officers := b.fetchOfficers(ctx, st, seed)
	b.fetchPSCs(ctx, st, seed)
	b.expand(ctx, st, seed, officers)

	st.finalize()
	return st.network, nil
}

// resolveSeed turns the query into a full company profile: direct lookup for
// inputs shaped like a company number, name search otherwise.
func (b *Builder) resolveSeed(ctx context.Context, st *build, query string) (*model.Company, error) {
	number := query
	if !LooksLikeCompanyNumber(query) {
		st.apiCalls++
		matches, err := b.client.SearchCompanies(ctx, query, 1)
		if err != nil {
			return nil, err
		}
		number = matches[0].CompanyNumber
	}
	st.apiCalls++
	return b.client.GetCompanyProfile(ctx, number)
}

// fetchOfficers loads the seed's officers, adds person nodes and officer_of
// edges, and returns the recency-bounded expansion set. A failed officer
// lookup degrades to a seed-only graph marked partial.
func (b *Builder) fetchOfficers(ctx context.Context, st *build, seed *model.Company) []*model.Officer {
	st.apiCalls++
	officers, err := b.client.GetOfficers(ctx, seed.CompanyNumber)
	if err != nil {
		st.network.Failures = append(st.network.Failures, model.ExpansionFailure{
			CompanyNumber: seed.CompanyNumber,
			Error:         fmt.Sprintf("listing officers: %v", err),
		})
		return nil
	}

	// Most recent appointments first; ISO dates sort lexically.
	sort.SliceStable(officers, func(i, j int) bool {
		return officers[i].AppointedOn > officers[j].AppointedOn
	})
	if len(officers) > st.opts.MaxOfficers {
		officers = officers[:st.opts.MaxOfficers]
	}

	seedNode := model.CompanyNodeID(seed.CompanyNumber)
	for _, o := range officers {
		id := model.PersonNodeID(o.Name)
		st.addNode(&model.Node{
			ID:      id,
			Type:    model.NodePerson,
			Label:   o.Name,
			Officer: o,
		})
		st.network.Edges = append(st.network.Edges, &model.Edge{
			Source:       id,
			Target:       seedNode,
			Relationship: model.RelOfficerOf,
			Role:         o.Role.String(),
		})
	}
	return officers
}

// fetchPSCs loads the seed's PSC register and adds controls edges.
func (b *Builder) fetchPSCs(ctx context.Context, st *build, seed *model.Company) {
	st.apiCalls++
	pscs, err := b.client.GetPSCs(ctx, seed.CompanyNumber)
	if err != nil {
		st.network.Failures = append(st.network.Failures, model.ExpansionFailure{
			CompanyNumber: seed.CompanyNumber,
			Error:         fmt.Sprintf("listing PSCs: %v", err),
		})
		return
	}

	seedNode := model.CompanyNodeID(seed.CompanyNumber)
	for _, p := range pscs {
		id := model.PSCNodeID(p.Name)
		st.addNode(&model.Node{
			ID:    id,
			Type:  model.NodePSC,
			Label: p.Name,
			PSC:   p,
		})
		st.network.Edges = append(st.network.Edges, &model.Edge{
			Source:       id,
			Target:       seedNode,
			Relationship: model.RelControls,
		})
	}
}

// expand looks up each officer's other appointments with a bounded worker
// pool, then merges the discoveries deterministically: companies sorted by
// number, truncated at the ceiling, one collapsed edge per company listing
// every shared officer.
//
// Officers without an appointments-link ID cannot be expanded; when none can,
// the result is the single-level star graph of the seed plus its officers.
func (b *Builder) expand(ctx context.Context, st *build, seed *model.Company, officers []*model.Officer) {
	var expandable []*model.Officer
	for _, o := range officers {
		if o.OfficerID != "" {
			expandable = append(expandable, o)
		}
	}
	if len(expandable) == 0 {
		return
	}

	jobs := make(chan *model.Officer)
	results := make(chan expansion, len(expandable))

	var wg sync.WaitGroup
	for range st.opts.Workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for o := range jobs {
				appts, err := b.client.GetAppointments(ctx, o.OfficerID)
				results <- expansion{officer: o, appts: appts, err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, o := range expandable {
			select {
			case jobs <- o:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	// Discovered companies keyed by number, with the officers linking them.
	type discovery struct {
		company *model.Company
		shared  map[string]struct{}
	}
	discovered := make(map[string]*discovery)

	for res := range results {
		st.apiCalls++
		if res.err != nil {
			st.network.Failures = append(st.network.Failures, model.ExpansionFailure{
				OfficerID:   res.officer.OfficerID,
				OfficerName: res.officer.Name,
				Error:       fmt.Sprintf("listing appointments: %v", res.err),
			})
			continue
		}
		for _, appt := range res.appts {
			if appt.CompanyNumber == seed.CompanyNumber {
				continue
			}
			d, ok := discovered[appt.CompanyNumber]
			if !ok {
				d = &discovery{
					company: &model.Company{
						CompanyNumber: appt.CompanyNumber,
						CompanyName:   appt.CompanyName,
						CompanyStatus: model.CompanyStatus(appt.CompanyStatus),
					},
					shared: make(map[string]struct{}),
				}
				discovered[appt.CompanyNumber] = d
			}
			d.shared[res.officer.Name] = struct{}{}
		}
	}

	numbers := make([]string, 0, len(discovered))
	for n := range discovered {
		numbers = append(numbers, n)
	}
	sort.Strings(numbers)

	if len(numbers) > st.opts.MaxCompanies {
		numbers = numbers[:st.opts.MaxCompanies]
		st.network.Meta.Truncated = true
	}

	seedNode := model.CompanyNodeID(seed.CompanyNumber)
	for _, n := range numbers {
		d := discovered[n]
		st.addNode(&model.Node{
			ID:      model.CompanyNodeID(n),
			Type:    model.NodeCompany,
			Label:   d.company.CompanyName,
			Company: d.company,
		})

		shared := make([]string, 0, len(d.shared))
		for name := range d.shared {
			shared = append(shared, name)
		}
		sort.Strings(shared)

		st.network.Edges = append(st.network.Edges, &model.Edge{
			Source:         seedNode,
			Target:         model.CompanyNodeID(n),
			Relationship:   model.RelSharedOfficer,
			SharedOfficers: shared,
		})
	}
}

// addNode inserts a node unless one with the same ID already exists.
func (st *build) addNode(n *model.Node) {
	if _, ok := st.nodes[n.ID]; ok {
		return
	}
	st.nodes[n.ID] = n
	st.network.Nodes = append(st.network.Nodes, n)
}

// finalize orders nodes and edges deterministically and stamps the metadata.
func (st *build) finalize() {
	sort.Slice(st.network.Nodes, func(i, j int) bool {
		a, b := st.network.Nodes[i], st.network.Nodes[j]
		if a.Type != b.Type {
			return nodeTypeOrder(a.Type) < nodeTypeOrder(b.Type)
		}
		return a.ID < b.ID
	})
	// The full key matters: an officer listed twice at the seed (say director
	// and secretary rows) yields two edges for the same node pair.
	sort.Slice(st.network.Edges, func(i, j int) bool {
		a, b := st.network.Edges[i], st.network.Edges[j]
		if a.Source != b.Source {
			return a.Source < b.Source
		}
		if a.Target != b.Target {
			return a.Target < b.Target
		}
		if a.Relationship != b.Relationship {
			return a.Relationship < b.Relationship
		}
		return a.Role < b.Role
	})
	st.network.Meta.APICalls = st.apiCalls
	st.network.Meta.FinishedAt = time.Now().UTC()
	st.network.PartialData = st.network.Partial()
}

func nodeTypeOrder(t model.NodeType) int {
	switch t {
	case model.NodeCompany:
		return 0
	case model.NodePerson:
		return 1
	default:
		return 2
	}
}
