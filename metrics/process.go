// Copyright (c) 2025 The Tangle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"os"

	"github.com/elastic/gosigar"
	"github.com/prometheus/client_golang/prometheus"
)

// processCollector gathers process and system resource stats on scrape.
// It implements the prometheus.Collector interface.
type processCollector struct {
	pid int

	residentDesc *prometheus.Desc
	virtualDesc  *prometheus.Desc
	cpuDesc      *prometheus.Desc
	sysMemDesc   *prometheus.Desc
}

func newProcessCollector() *processCollector {
	return &processCollector{
		pid: os.Getpid(),

		residentDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "process", "resident_memory_bytes"),
			"Resident memory size of the process.",
			nil, nil,
		),
		virtualDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "process", "virtual_memory_bytes"),
			"Virtual memory size of the process.",
			nil, nil,
		),
		cpuDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "process", "cpu_total_ms"),
			"Total CPU time consumed by the process in milliseconds.",
			nil, nil,
		),
		sysMemDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "system", "memory_bytes"),
			"System memory by kind.",
			[]string{"kind"}, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *processCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.residentDesc
	ch <- c.virtualDesc
	ch <- c.cpuDesc
	ch <- c.sysMemDesc
}

// Collect implements prometheus.Collector.
func (c *processCollector) Collect(ch chan<- prometheus.Metric) {
	procMem := gosigar.ProcMem{}
	if err := procMem.Get(c.pid); err == nil {
		ch <- prometheus.MustNewConstMetric(c.residentDesc, prometheus.GaugeValue, float64(procMem.Resident))
		ch <- prometheus.MustNewConstMetric(c.virtualDesc, prometheus.GaugeValue, float64(procMem.Size))
	}

	procTime := gosigar.ProcTime{}
	if err := procTime.Get(c.pid); err == nil {
		ch <- prometheus.MustNewConstMetric(c.cpuDesc, prometheus.CounterValue, float64(procTime.Total))
	}

	sysMem := gosigar.Mem{}
	if err := sysMem.Get(); err == nil {
		ch <- prometheus.MustNewConstMetric(c.sysMemDesc, prometheus.GaugeValue, float64(sysMem.Total), "total")
		ch <- prometheus.MustNewConstMetric(c.sysMemDesc, prometheus.GaugeValue, float64(sysMem.Free), "free")
		ch <- prometheus.MustNewConstMetric(c.sysMemDesc, prometheus.GaugeValue, float64(sysMem.Used), "used")
	}
}
