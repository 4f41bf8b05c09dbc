package storage

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"math"
	"os"
	"path/filepath"

	g "github.com/onsi/ginkgo/v2"
	o "github.com/onsi/gomega"

	"github.com/san-kum/conserve/internal/config"
	"github.com/san-kum/conserve/internal/dynamo"
	"github.com/san-kum/conserve/internal/sim"
)

var _ = g.Describe("Store", func() {
	var (
		dir string
		st  *Store
	)

	g.BeforeEach(func() {
		dir = g.GinkgoT().TempDir()
		st = New(filepath.Join(dir, "data"))
	})

	g.It("reports every field as defaulted when nothing was saved", func() {
		s, defaulted, err := st.LoadState()
		o.Expect(err).NotTo(o.HaveOccurred())
		o.Expect(s).To(o.Equal(dynamo.State{}))
		o.Expect(defaulted).To(o.Equal([]string{"m0", "v0", "m1", "v1"}))
	})

	g.It("round-trips a saved state", func() {
		want := dynamo.State{M0: 2, V0: 3, M1: 1, V1: -1}
		o.Expect(st.SaveState(want)).To(o.Succeed())

		got, defaulted, err := st.LoadState()
		o.Expect(err).NotTo(o.HaveOccurred())
		o.Expect(defaulted).To(o.BeEmpty())
		o.Expect(got).To(o.Equal(want))
	})

	g.It("writes a versioned record", func() {
		o.Expect(st.SaveState(dynamo.State{M0: 1})).To(o.Succeed())

		data, err := os.ReadFile(st.StatePath())
		o.Expect(err).NotTo(o.HaveOccurred())

		var rec map[string]any
		o.Expect(json.Unmarshal(data, &rec)).To(o.Succeed())
		o.Expect(rec).To(o.HaveKeyWithValue("version", 1.0))
		o.Expect(rec).To(o.HaveKeyWithValue("m0", 1.0))
	})

	g.It("falls back per field on a partial record", func() {
		o.Expect(st.Init()).To(o.Succeed())
		data := []byte(`{"version": 0, "m0": 4, "v0": "fast", "v1": -2.5}`)
		o.Expect(os.WriteFile(st.StatePath(), data, 0644)).To(o.Succeed())

		got, defaulted, err := st.LoadState()
		o.Expect(err).NotTo(o.HaveOccurred())
		o.Expect(got).To(o.Equal(dynamo.State{M0: 4, V1: -2.5}))
		o.Expect(defaulted).To(o.ConsistOf("v0", "m1"))
	})

	g.It("falls back entirely on a garbled record", func() {
		o.Expect(st.Init()).To(o.Succeed())
		o.Expect(os.WriteFile(st.StatePath(), []byte("m0=4"), 0644)).To(o.Succeed())

		got, defaulted, err := st.LoadState()
		o.Expect(err).NotTo(o.HaveOccurred())
		o.Expect(got).To(o.Equal(dynamo.State{}))
		o.Expect(defaulted).To(o.HaveLen(4))
	})

	g.It("clears the saved state", func() {
		o.Expect(st.SaveState(dynamo.State{V0: 1})).To(o.Succeed())
		o.Expect(st.ClearState()).To(o.Succeed())
		o.Expect(st.StatePath()).NotTo(o.BeAnExistingFile())
		o.Expect(st.ClearState()).To(o.Succeed())
	})

	g.It("serves as the session's state store", func() {
		sess := sim.NewSession(dynamo.State{}, nil, st, nil)
		o.Expect(sess.Edit(dynamo.FieldV0, 2.5)).To(o.Succeed())
		o.Expect(sess.Close()).To(o.Succeed())

		restored := sim.Restore(st, dynamo.State{M0: 1}, nil)
		o.Expect(restored).To(o.Equal(dynamo.State{V0: 2.5}))
	})
})

var _ = g.Describe("Export", func() {
	var frame sim.Frame

	g.BeforeEach(func() {
		frame = sim.Evaluate(
			dynamo.State{M0: 1, V0: 1, M1: 1, V1: 0},
			dynamo.Domain{Min: -2, Max: 2},
			5,
			config.DefaultConfig().Style,
		)
	})

	g.It("writes one CSV row per sample", func() {
		var buf bytes.Buffer
		o.Expect(WriteCSV(&buf, frame)).To(o.Succeed())

		rows, err := csv.NewReader(&buf).ReadAll()
		o.Expect(err).NotTo(o.HaveOccurred())
		o.Expect(rows).To(o.HaveLen(1 + 3*5))
		o.Expect(rows[0]).To(o.Equal([]string{"series", "x", "y"}))
		o.Expect(rows[1]).To(o.Equal([]string{"momentum", "-2.000000", "3.000000"}))
		// x = -2 lies outside the reachable range of the energy ellipse
		o.Expect(rows[6]).To(o.Equal([]string{"energy_upper", "-2.000000", "NaN"}))
		o.Expect(rows[8]).To(o.Equal([]string{"energy_upper", "0.000000", "1.000000"}))
	})

	g.It("exports CSV to a file", func() {
		path := filepath.Join(g.GinkgoT().TempDir(), "curves.csv")
		o.Expect(ExportCSV(path, frame)).To(o.Succeed())
		o.Expect(path).To(o.BeAnExistingFile())
	})

	g.It("encodes non-finite values as null in JSON", func() {
		var buf bytes.Buffer
		o.Expect(WriteJSON(&buf, frame)).To(o.Succeed())

		var doc struct {
			State   dynamo.State            `json:"state"`
			Derived map[string]*float64     `json:"derived"`
			Series  map[string][][]*float64 `json:"series"`
		}
		o.Expect(json.Unmarshal(buf.Bytes(), &doc)).To(o.Succeed())
		o.Expect(doc.State).To(o.Equal(frame.State))
		o.Expect(*doc.Derived["momentum"]).To(o.Equal(1.0))
		o.Expect(doc.Series).To(o.HaveKey("energy_lower"))

		upper := doc.Series["energy_upper"]
		o.Expect(upper).To(o.HaveLen(5))
		o.Expect(upper[0][1]).To(o.BeNil())
		o.Expect(*upper[2][1]).To(o.Equal(1.0))
	})

	g.It("encodes a degenerate state without failing", func() {
		degenerate := sim.Evaluate(dynamo.State{M0: 2, V0: 3}, dynamo.Domain{Min: -1, Max: 1}, 4, config.DefaultConfig().Style)
		data := NewExportData(degenerate)
		o.Expect(data.Derived["reachable_bound"]).NotTo(o.BeNil())
		o.Expect(math.IsNaN(degenerate.Momentum.Points[0].Y) || math.IsInf(degenerate.Momentum.Points[0].Y, 0)).To(o.BeTrue())

		var buf bytes.Buffer
		o.Expect(WriteJSON(&buf, degenerate)).To(o.Succeed())
	})
})
