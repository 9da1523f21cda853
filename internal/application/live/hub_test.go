package live_test

import (
	"testing"
	"time"

	"gymtracker/internal/application/live"
)

func drain(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	case <-time.After(100 * time.Millisecond):
		return false
	}
}

// TestPublishWakesSubscriber verifies a publish reaches a topic subscriber.
func TestPublishWakesSubscriber(t *testing.T) {
	hub := live.NewHub()
	sub := hub.Subscribe(live.TopicMembers)
	defer sub.Close()

	hub.Publish(live.TopicMembers)
	if !drain(sub.C) {
		t.Fatal("no signal received after publish")
	}
}

// TestPublishCoalesces verifies rapid publishes collapse into one signal.
func TestPublishCoalesces(t *testing.T) {
	hub := live.NewHub()
	sub := hub.Subscribe(live.TopicMembers)
	defer sub.Close()

	for i := 0; i < 10; i++ {
		hub.Publish(live.TopicMembers)
	}

	if !drain(sub.C) {
		t.Fatal("no signal received")
	}
	select {
	case <-sub.C:
		t.Error("second signal received; publishes should coalesce")
	default:
	}
}

// TestPublishIsTopicScoped verifies subscribers only hear their own topic.
func TestPublishIsTopicScoped(t *testing.T) {
	hub := live.NewHub()
	members := hub.Subscribe(live.TopicMembers)
	defer members.Close()
	types := hub.Subscribe(live.TopicTrainingTypes)
	defer types.Close()

	hub.Publish(live.TopicTrainingTypes)

	if !drain(types.C) {
		t.Fatal("trainingTypes subscriber missed its publish")
	}
	select {
	case <-members.C:
		t.Error("members subscriber received a trainingTypes publish")
	default:
	}
}

// TestCloseDetaches verifies a closed subscription stops receiving.
func TestCloseDetaches(t *testing.T) {
	hub := live.NewHub()
	sub := hub.Subscribe(live.TopicMembers)
	sub.Close()

	if n := hub.SubscriberCount(live.TopicMembers); n != 0 {
		t.Errorf("SubscriberCount = %d after close, want 0", n)
	}

	// Publishing to a topic with no subscribers must not panic.
	hub.Publish(live.TopicMembers)

	// Double close is a no-op.
	sub.Close()
}

// TestPublishNeverBlocks verifies a publisher completes even when no
// subscriber is reading.
func TestPublishNeverBlocks(t *testing.T) {
	hub := live.NewHub()
	sub := hub.Subscribe(live.TopicMembers)
	defer sub.Close()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			hub.Publish(live.TopicMembers)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on an idle subscriber")
	}
}
