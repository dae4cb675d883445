package printers

import (
	"fmt"
	"net"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/MySagra/mycassa/internal/metrics"
)

// DialTimeout bounds the connect and the whole send of one job.
const DialTimeout = 3 * time.Second

// Job is one encoded payload bound to a resolved target. The payload
// already carries the cut command when cutting was requested.
type Job struct {
	Target  Target
	Label   string // receipt category, for results and logs
	Payload []byte
}

// Result is the outcome of one dispatch attempt.
type Result struct {
	Target  string `json:"printer"`
	Label   string `json:"categoria"`
	OK      bool   `json:"ok"`
	Message string `json:"msg"`
}

// Dispatcher sends encoded receipts to printers over raw TCP, one job
// at a time. Failures never abort the remaining jobs.
type Dispatcher struct {
	timeout time.Duration
}

// NewDispatcher returns a Dispatcher with the given per-job timeout;
// zero means DialTimeout.
func NewDispatcher(timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = DialTimeout
	}
	return &Dispatcher{timeout: timeout}
}

// Send delivers one job. A target without an address fails immediately
// with a configuration diagnostic; transport problems become failure
// results, never errors.
func (d *Dispatcher) Send(job Job) Result {
	res := Result{Target: job.Target.Name, Label: job.Label}

	if job.Target.Host == "" {
		res.Message = "printer address not configured"
		metrics.PrintJobsTotal.WithLabelValues("config_error").Inc()
		return res
	}

	addr := net.JoinHostPort(job.Target.Host, strconv.Itoa(job.Target.Port))
	conn, err := net.DialTimeout("tcp", addr, d.timeout)
	if err != nil {
		res.Message = fmt.Sprintf("connect %s: %v", addr, err)
		metrics.PrintJobsTotal.WithLabelValues("failed").Inc()
		return res
	}
	defer conn.Close()

	_ = conn.SetDeadline(time.Now().Add(d.timeout))
	if _, err := conn.Write(job.Payload); err != nil {
		res.Message = fmt.Sprintf("send to %s: %v", addr, err)
		metrics.PrintJobsTotal.WithLabelValues("failed").Inc()
		return res
	}
	// Orderly half-close so the printer sees the end of the stream
	// before the connection drops.
	if tc, ok := conn.(*net.TCPConn); ok {
		_ = tc.CloseWrite()
	}

	res.OK = true
	res.Message = "sent to " + addr
	metrics.PrintJobsTotal.WithLabelValues("sent").Inc()
	return res
}

// SendAll dispatches the jobs sequentially and returns one result per
// job, in order.
func (d *Dispatcher) SendAll(jobs []Job) []Result {
	results := make([]Result, 0, len(jobs))
	for _, job := range jobs {
		res := d.Send(job)
		log.WithFields(log.Fields{
			"printer":  res.Target,
			"category": res.Label,
			"ok":       res.OK,
			"bytes":    len(job.Payload),
		}).Info(res.Message)
		results = append(results, res)
	}
	return results
}
