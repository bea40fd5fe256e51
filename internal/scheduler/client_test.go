package scheduler

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

type testSchedulerConfig struct {
	redisURL string
	queue    string
}

func (c testSchedulerConfig) GetRedisURL() string       { return c.redisURL }
func (c testSchedulerConfig) GetRedisTLSInsecure() bool { return false }
func (c testSchedulerConfig) GetAsynqQueueName() string { return c.queue }
func (c testSchedulerConfig) GetAsynqConcurrency() int  { return 1 }

func TestClientRequiresRedisURL(t *testing.T) {
	_, err := NewClient(testSchedulerConfig{})
	if err == nil {
		t.Fatal("expected an error without a redis url")
	}
}

func TestEnqueueGuideBuildPDF(t *testing.T) {
	srv := miniredis.RunT(t)

	client, err := NewClient(testSchedulerConfig{redisURL: "redis://" + srv.Addr(), queue: "guides"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.Close()

	err = client.EnqueueGuideBuildPDF(context.Background(), GuideBuildPDFPayload{
		OrganizationID: "8c2d05d8-6c44-4a43-9c62-86077b4a43f1",
		LandingHash:    "lp42abc",
		GuideSlug:      "guia-estrategico-consorcio",
	})
	if err != nil {
		t.Fatalf("EnqueueGuideBuildPDF: %v", err)
	}

	keys := srv.Keys()
	if len(keys) == 0 {
		t.Fatal("expected the task to land in redis")
	}

	found := false
	for _, k := range keys {
		if k == "asynq:{guides}:pending" {
			found = true
		}
	}
	if !found {
		t.Fatalf("pending list for queue guides not found, keys: %v", keys)
	}
}

func TestGuideBuildPDFTaskRoundTrip(t *testing.T) {
	payload := GuideBuildPDFPayload{
		OrganizationID: "8c2d05d8-6c44-4a43-9c62-86077b4a43f1",
		LandingHash:    "lp42abc",
		GuideSlug:      "guia-estrategico-consorcio",
	}

	task, err := NewGuideBuildPDFTask(payload)
	if err != nil {
		t.Fatalf("NewGuideBuildPDFTask: %v", err)
	}
	if task.Type() != TaskGuideBuildPDF {
		t.Fatalf("unexpected task type %q", task.Type())
	}

	parsed, err := ParseGuideBuildPDFPayload(task)
	if err != nil {
		t.Fatalf("ParseGuideBuildPDFPayload: %v", err)
	}
	if parsed != payload {
		t.Fatalf("payload mismatch: %+v != %+v", parsed, payload)
	}
}
