package chartcmder

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Chart Command", func() {
	var (
		tmpDir  string
		outPath string
	)

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "cryptobot-chart-test-*")
		Expect(err).NotTo(HaveOccurred())
		outPath = filepath.Join(tmpDir, "chart.html")
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	runChart := func(args ...string) (string, error) {
		cmd := NewChartCmd()
		var out strings.Builder
		cmd.SetOut(&out)
		cmd.SetErr(&out)
		cmd.SetArgs(args)
		err := cmd.Execute()
		return out.String(), err
	}

	It("renders a mock chart to HTML", func() {
		out, err := runChart("bitcoin", "--mock", "--timeframe", "1M", "--output", outPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("Wrote " + outPath))
		Expect(out).To(ContainSubstring("Current price: $"))

		html, err := os.ReadFile(outPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(html)).To(ContainSubstring("echarts"))
		Expect(string(html)).To(ContainSubstring("Volume"))
	})

	It("rejects an unknown timeframe", func() {
		_, err := runChart("bitcoin", "--mock", "--timeframe", "2H", "--output", outPath)
		Expect(err).To(MatchError(ContainSubstring("unknown timeframe")))
		Expect(outPath).NotTo(BeAnExistingFile())
	})

	It("fetches a live series from the API", func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			Expect(r.URL.Path).To(Equal("/coins/ethereum/market_chart"))
			Expect(r.URL.Query().Get("days")).To(Equal("7"))
			fmt.Fprint(w, `{"prices":[[1700000000000,100],[1700086400000,110]],"total_volumes":[[1700000000000,1000],[1700086400000,2000]]}`)
		}))
		defer srv.Close()

		out, err := runChart("ethereum", "--timeframe", "1W", "--api-base", srv.URL, "--output", outPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("Current price: $110.00"))

		html, err := os.ReadFile(outPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(html)).To(ContainSubstring("echarts"))
	})

	It("reports an upstream failure", func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		_, err := runChart("no-such-coin", "--timeframe", "1W", "--api-base", srv.URL, "--output", outPath)
		Expect(err).To(MatchError(ContainSubstring("no-such-coin")))
	})
})
