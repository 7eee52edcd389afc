package s3store_test

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"

	"lantern/internal/logging"
	"lantern/internal/store/s3store"
)

func TestDryRunSkipsWrites(t *testing.T) {
	client := s3store.New(aws.Config{}, "content-bucket", true, logging.NewNop())

	// No credentials or network are available in tests; dry-run must still
	// succeed without touching S3.
	err := client.PutImmutable(context.Background(), "activities/u_1/e_1/a_1/v1/manifest-abc.json", map[string]int{"n": 1})
	if err != nil {
		t.Fatalf("dry-run PutImmutable returned error: %v", err)
	}
}

func TestURI(t *testing.T) {
	client := s3store.New(aws.Config{}, "content-bucket", true, logging.NewNop())
	got := client.URI("activities/u_1/e_1/a_1/v1/manifest-abc.json")
	want := "s3://content-bucket/activities/u_1/e_1/a_1/v1/manifest-abc.json"
	if got != want {
		t.Fatalf("unexpected uri: got %q want %q", got, want)
	}
}

func TestDryRunStillRejectsUnserializablePayload(t *testing.T) {
	client := s3store.New(aws.Config{}, "content-bucket", true, logging.NewNop())
	if err := client.PutImmutable(context.Background(), "key", func() {}); err == nil {
		t.Fatal("expected serialization error")
	}
}
