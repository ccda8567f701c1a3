package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"

	"github.com/xtding233/breeding-backend/internal/breed"
	"github.com/xtding233/breeding-backend/internal/rules"
)

const (
	defaultTrials = 10000
	maxTrials     = 1000000
)

type outcomeResp struct {
	First         string                  `json:"first"`
	Second        string                  `json:"second"`
	Result        string                  `json:"result"`
	Tier          int                     `json:"tier"`
	Branch        string                  `json:"branch"`
	Advanced      bool                    `json:"advanced"`
	Pool          []string                `json:"pool"`
	Probabilities breed.ProbabilityConfig `json:"probabilities"`
	Version       string                  `json:"version,omitempty"`
}

type oddsResp struct {
	First         string                  `json:"first"`
	Second        string                  `json:"second"`
	Colors        map[string]float64      `json:"colors"`
	Tiers         map[string]float64      `json:"tiers"`
	AdvanceChance float64                 `json:"advance_chance"`
	Probabilities breed.ProbabilityConfig `json:"probabilities"`
}

type simulateResp struct {
	First         string                  `json:"first"`
	Second        string                  `json:"second"`
	Trials        int                     `json:"trials"`
	Colors        map[string]int          `json:"colors"`
	Tiers         map[string]int          `json:"tiers"`
	Advanced      int                     `json:"advanced"`
	Tier          breed.Stats             `json:"tier_stats"`
	Probabilities breed.ProbabilityConfig `json:"probabilities"`
}

type tierResp struct {
	Tier   int      `json:"tier"`
	Colors []string `json:"colors"`
}

type errResp struct {
	Err string `json:"err"`
}

// paramsSource is the hot-reloaded configuration of the active profile.
type paramsSource interface {
	Params() rules.Params
	Profile() string
}

type api struct {
	breeder  *breed.Breeder
	store    paramsSource
	resolver rules.Resolver
	rng      breed.RandomSource
	logger   *slog.Logger
}

func newAPI(b *breed.Breeder, store paramsSource, resolver rules.Resolver, logger *slog.Logger) *api {
	return &api{
		breeder:  b,
		store:    store,
		resolver: resolver,
		rng:      breed.NewLockedRNG(nil),
		logger:   logger,
	}
}

func (a *api) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /breed", a.handleBreed)
	mux.HandleFunc("GET /odds", a.handleOdds)
	mux.HandleFunc("GET /simulate", a.handleSimulate)
	mux.HandleFunc("GET /tiers", handleTiers)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return withRequestID(withAccessLog(a.logger, mux))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errResp{Err: msg})
}

func parseFloat(r *http.Request, key string) (float64, bool, string) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return 0, false, ""
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, "invalid " + key
	}
	return v, true, ""
}

func parseInt(r *http.Request, key string) (int, bool, string) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return 0, false, ""
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false, "invalid " + key
	}
	return v, true, ""
}

func parseParents(r *http.Request) (breed.Color, breed.Color, string) {
	first, err := breed.ParseColor(r.URL.Query().Get("first"))
	if err != nil {
		return 0, 0, "invalid first: " + err.Error()
	}
	second, err := breed.ParseColor(r.URL.Query().Get("second"))
	if err != nil {
		return 0, 0, "invalid second: " + err.Error()
	}
	return first, second, ""
}

// params returns the probabilities for this request. Without a profile or
// overrides in the query it reports the live params of the active profile.
// custom is true when the request asked for something else.
func (a *api) params(r *http.Request) (p rules.Params, custom bool, msg string) {
	var o rules.Overrides
	if v, ok, m := parseFloat(r, "same_tier_upgrade_chance"); m != "" {
		return rules.Params{}, false, m
	} else if ok {
		o.SameTierUpgradeChance = &v
	}
	if v, ok, m := parseFloat(r, "cross_tier_breakthrough_chance"); m != "" {
		return rules.Params{}, false, m
	} else if ok {
		o.CrossTierBreakthroughChance = &v
	}
	profile := r.URL.Query().Get("profile")
	if profile == "" && o == (rules.Overrides{}) {
		return a.store.Params(), false, ""
	}
	if profile == "" {
		profile = a.store.Profile()
	}
	_, params, err := a.resolver.Resolve(profile, o)
	if err != nil {
		if errors.Is(err, rules.ErrInvalidProfile) {
			return rules.Params{}, false, err.Error()
		}
		a.logger.Error("resolve params", "profile", profile, "err", err)
		return rules.Params{}, false, "profile " + profile + " is unavailable"
	}
	return params, true, ""
}

func (a *api) handleBreed(w http.ResponseWriter, r *http.Request) {
	first, second, msg := parseParents(r)
	if msg != "" {
		badRequest(w, msg)
		return
	}
	params, custom, msg := a.params(r)
	if msg != "" {
		badRequest(w, msg)
		return
	}

	var out breed.Outcome
	if custom {
		out = breed.ResolveOutcome(first, second, params.Probabilities, a.rng)
	} else {
		out = a.breeder.Outcome(first, second)
	}

	pool := make([]string, len(out.Pool))
	for i, c := range out.Pool {
		pool[i] = c.String()
	}
	writeJSON(w, http.StatusOK, outcomeResp{
		First:         first.String(),
		Second:        second.String(),
		Result:        out.Result.String(),
		Tier:          int(breed.TierOf(out.Result)),
		Branch:        string(out.Branch),
		Advanced:      out.Advanced,
		Pool:          pool,
		Probabilities: params.Probabilities,
		Version:       params.Version,
	})
}

func (a *api) handleOdds(w http.ResponseWriter, r *http.Request) {
	first, second, msg := parseParents(r)
	if msg != "" {
		badRequest(w, msg)
		return
	}
	params, _, msg := a.params(r)
	if msg != "" {
		badRequest(w, msg)
		return
	}
	d := breed.Odds(first, second, params.Probabilities)
	resp := oddsResp{
		First:         first.String(),
		Second:        second.String(),
		Colors:        make(map[string]float64, len(d.Colors)),
		Tiers:         make(map[string]float64, len(d.Tiers)),
		AdvanceChance: d.AdvanceChance,
		Probabilities: params.Probabilities,
	}
	for c, p := range d.Colors {
		resp.Colors[c.String()] = p
	}
	for t, p := range d.Tiers {
		resp.Tiers[strconv.Itoa(int(t))] = p
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *api) handleSimulate(w http.ResponseWriter, r *http.Request) {
	first, second, msg := parseParents(r)
	if msg != "" {
		badRequest(w, msg)
		return
	}
	params, _, msg := a.params(r)
	if msg != "" {
		badRequest(w, msg)
		return
	}
	trials, ok, msg := parseInt(r, "trials")
	if msg != "" {
		badRequest(w, msg)
		return
	}
	if !ok {
		trials = defaultTrials
	}
	if trials <= 0 || trials > maxTrials {
		badRequest(w, "trials must be in 1.."+strconv.Itoa(maxTrials))
		return
	}
	seed := rand.Uint64()
	if s := r.URL.Query().Get("seed"); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			badRequest(w, "invalid seed")
			return
		}
		seed = v
	}

	res, err := breed.RunMonteCarlo(first, second, params.Probabilities, trials, breed.NewSeededRNG(seed))
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	resp := simulateResp{
		First:         first.String(),
		Second:        second.String(),
		Trials:        res.Trials,
		Colors:        make(map[string]int, len(res.Colors)),
		Tiers:         make(map[string]int, len(res.Tiers)),
		Advanced:      res.Advanced,
		Tier:          res.Tier,
		Probabilities: params.Probabilities,
	}
	for c, n := range res.Colors {
		resp.Colors[c.String()] = n
	}
	for t, n := range res.Tiers {
		resp.Tiers[strconv.Itoa(int(t))] = n
	}
	writeJSON(w, http.StatusOK, resp)
}

func handleTiers(w http.ResponseWriter, _ *http.Request) {
	var out []tierResp
	for t := breed.TierMin; t <= breed.TierMax; t++ {
		var colors []string
		for _, c := range breed.ColorsInTier(t) {
			colors = append(colors, c.String())
		}
		out = append(out, tierResp{Tier: int(t), Colors: colors})
	}
	writeJSON(w, http.StatusOK, out)
}
