package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ciphron/scdl"
	"github.com/ciphron/scdl/gf2"
	"github.com/ciphron/scdl/internal/runner"
	"github.com/ciphron/scdl/internal/varview"
)

var badRequestErrorMsg = "Bad Request - please contact the administrator"
var internalServerErrorMsg = "Internal Server Error - please contact the administrator"

// RootHandler is the handler for the / endpoint.
func (a *appServer) RootHandler(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		panic("logger not found in context")
	}
	l.Debug().Msg("serving root endpoint")
	c.JSON(http.StatusOK, gin.H{"service": "scdl", "version": a.version})
}

// HealthHandler is the handler for the /health endpoint.
func (a *appServer) HealthHandler(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		panic("logger not found in context")
	}
	l.Debug().Msg("serving health endpoint")
	c.String(http.StatusOK, "OK")
}

// CompileRequest is the body of POST /api/programs.
type CompileRequest struct {
	Source string          `json:"source"`
	View   json.RawMessage `json:"view,omitempty"`
}

// CompileResponse describes a freshly compiled program.
type CompileResponse struct {
	ID        string   `json:"id"`
	Circuits  []string `json:"circuits"`
	Variables []string `json:"variables"`
	Constants []string `json:"constants"`
}

// CompileProgram is the handler for POST /api/programs: it compiles SCDL
// source, registers the result under a fresh ID, and optionally parses and
// registers an accompanying variable view for later use by RunEval.
func (a *appServer) CompileProgram(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		panic("logger not found in context")
	}
	l.Debug().Msg("serving program compilation endpoint")

	var req CompileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Error().Err(err).Msg("binding JSON failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	p, err := scdl.Compile(strings.NewReader(req.Source))
	if err != nil {
		l.Warn().Err(err).Msg("compilation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := a.store.Save(p)

	if len(req.View) > 0 {
		view, err := varview.Parse(bytes.NewReader(req.View))
		if err != nil {
			l.Warn().Err(err).Msg("parsing variable view failed")
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid view: " + err.Error()})
			return
		}
		a.views.set(id, view)
	}

	c.JSON(http.StatusOK, CompileResponse{
		ID:        id,
		Circuits:  p.CircuitNames(),
		Variables: p.VariableNames(),
		Constants: p.ConstantNames(),
	})
}

// GetProgram is the handler for GET /api/programs/:id.
func (a *appServer) GetProgram(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		panic("logger not found in context")
	}
	l.Debug().Msg("serving program metadata endpoint")

	id := c.Param("id")
	p, err := a.store.Get(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "program not found"})
		return
	}

	c.JSON(http.StatusOK, CompileResponse{
		ID:        id,
		Circuits:  p.CircuitNames(),
		Variables: p.VariableNames(),
		Constants: p.ConstantNames(),
	})
}

// RunRequest is the body of POST /api/programs/:id/run: a direct,
// per-variable map of single-bit values keyed by declared variable name.
type RunRequest struct {
	Circuit string      `json:"circuit"`
	Inputs  map[string]int `json:"inputs"`
}

// RunResult is the response to a single-vector run.
type RunResult struct {
	Value int `json:"value"`
}

// RunCircuit is the handler for POST /api/programs/:id/run: it evaluates
// one named circuit directly over gf2.Bit, bypassing the variable-view
// packing layer — callers already speaking in terms of raw circuit
// variables use this instead of RunEval.
func (a *appServer) RunCircuit(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		panic("logger not found in context")
	}
	l.Debug().Msg("serving circuit run endpoint")

	p, err := a.store.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "program not found"})
		return
	}

	var req RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Error().Err(err).Msg("binding JSON failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	bits := make([]gf2.Bit, p.NumVarInputs())
	for name, v := range req.Inputs {
		vi, ok := p.GetVariable(name)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown variable: " + name})
			return
		}
		if vi.Len != 1 || vi.Index < 0 || vi.Index >= len(bits) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "variable not addressable as a single bit: " + name})
			return
		}
		bits[vi.Index] = gf2.FromInt(v)
	}

	result, err := scdl.Run(p, req.Circuit, bits, gf2.FromInt)
	if err != nil {
		l.Warn().Err(err).Str("circuit", req.Circuit).Msg("evaluation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, RunResult{Value: int(result)})
}

// EvalRequest is the body of POST /api/programs/:id/eval.
type EvalRequest struct {
	Values map[string]any `json:"values"`
}

// RunEval is the handler for POST /api/programs/:id/eval: it packs
// higher-level values (ints, bools, bitstrings) through the variable view
// registered at compile time and returns the decoded outputs.
func (a *appServer) RunEval(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		panic("logger not found in context")
	}
	l.Debug().Msg("serving variable-view evaluation endpoint")

	id := c.Param("id")
	p, err := a.store.Get(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "program not found"})
		return
	}
	view, ok := a.views.get(id)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no variable view registered for this program"})
		return
	}

	var req EvalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Error().Err(err).Msg("binding JSON failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	bits, err := varview.PackInputs(p, view, req.Values)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outputs, err := varview.EvalOutputs(p, view, bits)
	if err != nil {
		l.Warn().Err(err).Msg("evaluation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, outputs)
}

// BatchRequest is the body of POST /api/programs/:id/batch: one circuit
// evaluated against many independent bit-vectors concurrently.
type BatchRequest struct {
	Circuit string    `json:"circuit"`
	Inputs  [][]int   `json:"inputs"`
}

// BatchResultItem is one entry of a batch response.
type BatchResultItem struct {
	Index int    `json:"index"`
	Value int    `json:"value,omitempty"`
	Error string `json:"error,omitempty"`
}

// RunBatch is the handler for POST /api/programs/:id/batch: it fans a
// batch of input vectors out across the runner's worker pool.
func (a *appServer) RunBatch(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		panic("logger not found in context")
	}
	l.Debug().Msg("serving batch run endpoint")

	p, err := a.store.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "program not found"})
		return
	}

	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Error().Err(err).Msg("binding JSON failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	circ, ok := p.GetCircuit(req.Circuit)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown circuit: " + req.Circuit})
		return
	}

	inputs := make([][]gf2.Bit, len(req.Inputs))
	for i, vec := range req.Inputs {
		bits := make([]gf2.Bit, len(vec))
		for j, v := range vec {
			bits[j] = gf2.FromInt(v)
		}
		inputs[i] = bits
	}

	results := runner.RunBatch(a.runner, circ, inputs)
	items := make([]BatchResultItem, len(results))
	for i, r := range results {
		item := BatchResultItem{Index: r.Index, Value: int(r.Value)}
		if r.Err != nil {
			item.Error = r.Err.Error()
		}
		items[i] = item
	}
	c.JSON(http.StatusOK, items)
}
