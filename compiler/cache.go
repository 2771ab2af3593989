package compiler

import (
	"bufio"
	"reflect"
	"strconv"

	"github.com/brimdata/serql/compiler/ast"
	"github.com/brimdata/serql/compiler/ast/algebra"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/zeebo/xxh3"
)

// Cache is a bounded cache of compiled plans keyed by a hash of the
// syntax tree.  Plans returned by Get are copies and may be modified by
// the caller.
type Cache struct {
	plans  *lru.Cache[uint64, algebra.TupleExpr]
	hits   prometheus.Counter
	misses prometheus.Counter
}

// NewCache returns a cache holding at most size plans.  If registerer is
// non-nil, the cache's hit and miss counters are registered with it.
func NewCache(size int, registerer prometheus.Registerer) (*Cache, error) {
	plans, err := lru.New[uint64, algebra.TupleExpr](size)
	if err != nil {
		return nil, err
	}
	c := &Cache{
		plans: plans,
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "serql_plan_cache_hits_total",
			Help: "Number of compilations answered from the plan cache.",
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "serql_plan_cache_misses_total",
			Help: "Number of compilations not found in the plan cache.",
		}),
	}
	if registerer != nil {
		for _, m := range []prometheus.Collector{c.hits, c.misses} {
			if err := registerer.Register(m); err != nil {
				return nil, err
			}
		}
	}
	return c, nil
}

// Key hashes qc together with scope, which names the settings the plan
// was compiled under.  The hash covers the concrete type of every node so
// trees that differ only in node type (e.g., And and Or with empty Kind
// fields) get different keys.
func (c *Cache) Key(qc *ast.QueryContainer, scope string) uint64 {
	h := xxh3.New()
	w := bufio.NewWriter(h)
	w.WriteString(scope)
	w.WriteByte(0)
	writeKey(w, reflect.ValueOf(qc))
	w.Flush()
	return h.Sum64()
}

func writeKey(w *bufio.Writer, v reflect.Value) {
	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			w.WriteString("nil")
			return
		}
		writeKey(w, v.Elem())
	case reflect.Ptr:
		if v.IsNil() {
			w.WriteString("nil")
			return
		}
		w.WriteString(v.Type().String())
		writeKey(w, v.Elem())
	case reflect.Struct:
		w.WriteByte('{')
		for k := 0; k < v.NumField(); k++ {
			writeKey(w, v.Field(k))
			w.WriteByte(';')
		}
		w.WriteByte('}')
	case reflect.Slice, reflect.Array:
		w.WriteByte('[')
		w.WriteString(strconv.Itoa(v.Len()))
		for k := 0; k < v.Len(); k++ {
			w.WriteByte(',')
			writeKey(w, v.Index(k))
		}
		w.WriteByte(']')
	case reflect.String:
		w.WriteString(strconv.Quote(v.String()))
	case reflect.Bool:
		w.WriteString(strconv.FormatBool(v.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		w.WriteString(strconv.FormatInt(v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		w.WriteString(strconv.FormatUint(v.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		w.WriteString(strconv.FormatFloat(v.Float(), 'g', -1, 64))
	default:
		// Syntax trees hold no maps, channels, or funcs.
		panic("compiler: cannot hash " + v.Type().String())
	}
}

func (c *Cache) Get(key uint64) (algebra.TupleExpr, bool) {
	plan, ok := c.plans.Get(key)
	if !ok {
		c.misses.Inc()
		return nil, false
	}
	c.hits.Inc()
	return algebra.Clone(plan), true
}

func (c *Cache) Add(key uint64, plan algebra.TupleExpr) {
	c.plans.Add(key, algebra.Clone(plan))
}

func (c *Cache) Len() int {
	return c.plans.Len()
}
