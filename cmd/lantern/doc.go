// Command lantern publishes a local tree of educational content to AWS:
// immutable activity manifests to S3 and mutable live pointer records to
// DynamoDB. Activity live records are written through a version guard so a
// published version never regresses.
package main
