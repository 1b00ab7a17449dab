package services

import (
	"errors"
	"testing"

	"github.com/leochenhaha/ForumAPI0924/internal/models"
)

func TestUpsertVoteIsIdempotent(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewVoteService(gdb)
	voter := createUser(t, gdb, "voter")
	post := createPost(t, gdb, nil, "a post")

	first, err := svc.Upsert(post.ID, voter.ID, models.Upvote)
	if err != nil {
		t.Fatalf("Upsert() = %v, want nil", err)
	}
	second, err := svc.Upsert(post.ID, voter.ID, models.Upvote)
	if err != nil {
		t.Fatalf("Upsert() second call = %v, want nil", err)
	}

	if first.Upvotes != second.Upvotes || first.Downvotes != second.Downvotes || first.Score != second.Score {
		t.Fatalf("repeated upsert changed summary: %+v vs %+v", first, second)
	}
	if second.Upvotes != 1 || second.Downvotes != 0 || second.Score != 1 {
		t.Fatalf("summary = %+v, want 1 upvote, score 1", second)
	}

	var rows int64
	gdb.Model(&models.PostVote{}).Where("post_id = ? AND user_id = ?", post.ID, voter.ID).Count(&rows)
	if rows != 1 {
		t.Fatalf("vote rows = %d, want exactly 1", rows)
	}
}

func TestUpsertVoteFlipChangesScoreByTwo(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewVoteService(gdb)
	voter := createUser(t, gdb, "voter")
	post := createPost(t, gdb, nil, "a post")

	up, err := svc.Upsert(post.ID, voter.ID, models.Upvote)
	if err != nil {
		t.Fatalf("Upsert(up) = %v, want nil", err)
	}
	down, err := svc.Upsert(post.ID, voter.ID, models.Downvote)
	if err != nil {
		t.Fatalf("Upsert(down) = %v, want nil", err)
	}

	if down.Score != up.Score-2 {
		t.Fatalf("score after flip = %d, want %d", down.Score, up.Score-2)
	}
	if down.Upvotes != 0 || down.Downvotes != 1 {
		t.Fatalf("summary after flip = %+v, want 0 up, 1 down", down)
	}

	var rows int64
	gdb.Model(&models.PostVote{}).Where("post_id = ? AND user_id = ?", post.ID, voter.ID).Count(&rows)
	if rows != 1 {
		t.Fatalf("vote rows = %d, want exactly 1", rows)
	}
}

func TestUpsertVoteUnknownPost(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewVoteService(gdb)
	voter := createUser(t, gdb, "voter")

	if _, err := svc.Upsert(9999, voter.ID, models.Upvote); !errors.Is(err, ErrTargetNotFound) {
		t.Fatalf("Upsert(unknown post) = %v, want ErrTargetNotFound", err)
	}
}

func TestUpsertVoteInvalidDirection(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewVoteService(gdb)
	voter := createUser(t, gdb, "voter")
	post := createPost(t, gdb, nil, "a post")

	if _, err := svc.Upsert(post.ID, voter.ID, models.VoteType(5)); !errors.Is(err, ErrValidation) {
		t.Fatalf("Upsert(vote type 5) = %v, want ErrValidation", err)
	}
}

func TestRemoveVote(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewVoteService(gdb)
	voter := createUser(t, gdb, "voter")
	post := createPost(t, gdb, nil, "a post")

	if _, err := svc.Remove(post.ID, voter.ID); !errors.Is(err, ErrVoteNotFound) {
		t.Fatalf("Remove(no vote) = %v, want ErrVoteNotFound", err)
	}

	if _, err := svc.Upsert(post.ID, voter.ID, models.Upvote); err != nil {
		t.Fatalf("Upsert() = %v, want nil", err)
	}
	summary, err := svc.Remove(post.ID, voter.ID)
	if err != nil {
		t.Fatalf("Remove() = %v, want nil", err)
	}
	if summary.Score != 0 || summary.Upvotes != 0 || summary.CurrentUserVote != nil {
		t.Fatalf("summary after remove = %+v, want empty", summary)
	}
}

func TestSummarizeAggregatesAllVoters(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewVoteService(gdb)
	post := createPost(t, gdb, nil, "a post")

	alice := createUser(t, gdb, "alice")
	bob := createUser(t, gdb, "bob")
	carol := createUser(t, gdb, "carol")

	for _, vote := range []struct {
		userID uint
		vt     models.VoteType
	}{
		{alice.ID, models.Upvote},
		{bob.ID, models.Upvote},
		{carol.ID, models.Downvote},
	} {
		if _, err := svc.Upsert(post.ID, vote.userID, vote.vt); err != nil {
			t.Fatalf("Upsert(%d) = %v, want nil", vote.userID, err)
		}
	}

	summary, err := svc.Summarize(post.ID, &carol.ID)
	if err != nil {
		t.Fatalf("Summarize() = %v, want nil", err)
	}
	if summary.Upvotes != 2 || summary.Downvotes != 1 || summary.Score != 1 {
		t.Fatalf("summary = %+v, want up 2, down 1, score 1", summary)
	}
	if summary.CurrentUserVote == nil || *summary.CurrentUserVote != models.Downvote {
		t.Fatalf("viewer vote = %v, want Downvote", summary.CurrentUserVote)
	}

	// 匿名訪客看不到自己的票
	anon, err := svc.Summarize(post.ID, nil)
	if err != nil {
		t.Fatalf("Summarize(anonymous) = %v, want nil", err)
	}
	if anon.CurrentUserVote != nil {
		t.Fatalf("anonymous viewer vote = %v, want nil", anon.CurrentUserVote)
	}
}
