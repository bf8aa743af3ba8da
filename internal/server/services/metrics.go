package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	uploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gd_uploads_total",
		Help: "Files processed by the upload flow, by outcome.",
	}, []string{"outcome"})

	uploadBytesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gd_upload_bytes_total",
		Help: "Bytes written to the blob store by successful uploads.",
	})

	orphanBlobsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gd_orphan_blobs_total",
		Help: "Blobs left without a catalog row, by what happened to them.",
	}, []string{"action"})

	summaryCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gd_summary_cache_hits_total",
		Help: "Summary requests answered from the in-memory cache.",
	})

	summaryCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gd_summary_cache_misses_total",
		Help: "Summary requests that had to be generated.",
	})

	summariesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gd_summaries_total",
		Help: "Generated summaries, by prompt path.",
	}, []string{"path"})
)
