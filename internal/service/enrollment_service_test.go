package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/hy-hyun/prototype/internal/dto"
	"github.com/hy-hyun/prototype/internal/model"
	"github.com/hy-hyun/prototype/internal/repository"
)

func newTestEnrollmentService() (EnrollmentService, *repository.Repository, *mockCourseRepo, *mockUserRepo) {
	repos, courses, users := newTestRepos()
	return NewEnrollmentService(testConfig(), repos, zap.NewNop()), repos, courses, users
}

func TestEnrollFCFS(t *testing.T) {
	svc, _, courses, users := newTestEnrollmentService()
	ctx := context.Background()
	seedUser(t, users, "u1", 100)
	courses.Create(ctx, newCourse("c1", "CSE101", "01", "자료구조", 3, 2,
		meeting(1, 0, 3, "제1공학관", "101")))

	app, err := svc.Apply(ctx, "u1", &dto.ApplyRequest{CourseRef: "c1", Method: model.MethodFCFS})
	if err != nil {
		t.Fatalf("선착순报名失败: %v", err)
	}
	if app.Status != model.AppStatusEnrolled {
		t.Errorf("期望状态=enrolled，实际=%s", app.Status)
	}

	c, _ := courses.GetByID(ctx, "c1")
	if c.Enrolled != 1 {
		t.Errorf("期望已占名额=1，实际=%d", c.Enrolled)
	}
}

func TestEnrollFCFS_Full(t *testing.T) {
	svc, _, courses, users := newTestEnrollmentService()
	ctx := context.Background()
	seedUser(t, users, "u1", 100)
	seedUser(t, users, "u2", 100)
	courses.Create(ctx, newCourse("c1", "CSE101", "01", "자료구조", 3, 1,
		meeting(1, 0, 3, "제1공학관", "101")))

	if _, err := svc.Apply(ctx, "u1", &dto.ApplyRequest{CourseRef: "c1", Method: model.MethodFCFS}); err != nil {
		t.Fatalf("首位报名失败: %v", err)
	}
	if _, err := svc.Apply(ctx, "u2", &dto.ApplyRequest{CourseRef: "c1", Method: model.MethodFCFS}); !errors.Is(err, ErrCourseFull) {
		t.Errorf("期望 ErrCourseFull，实际: %v", err)
	}
}

func TestEnroll_ScheduleConflictRejected(t *testing.T) {
	svc, _, courses, users := newTestEnrollmentService()
	ctx := context.Background()
	seedUser(t, users, "u1", 100)
	courses.Create(ctx, newCourse("c1", "CSE101", "01", "자료구조", 3, 40,
		meeting(1, 0, 3, "제1공학관", "101")))
	courses.Create(ctx, newCourse("c2", "CSE102", "01", "알고리즘", 3, 40,
		meeting(1, 2, 5, "제1공학관", "102")))

	if _, err := svc.Apply(ctx, "u1", &dto.ApplyRequest{CourseRef: "c1", Method: model.MethodFCFS}); err != nil {
		t.Fatalf("首门报名失败: %v", err)
	}
	// 书签篮只警告，正式报名遇硬冲突必须拒绝
	if _, err := svc.Apply(ctx, "u1", &dto.ApplyRequest{CourseRef: "c2", Method: model.MethodFCFS}); !errors.Is(err, ErrScheduleConflict) {
		t.Errorf("期望 ErrScheduleConflict，实际: %v", err)
	}
}

func TestEnroll_CreditLimit(t *testing.T) {
	svc, _, courses, users := newTestEnrollmentService()
	ctx := context.Background()
	users.Create(ctx, &model.User{ID: "u1", StudentID: "s-u1", Name: "테스트", Points: 100, MaxCredits: 5})
	courses.Create(ctx, newCourse("c1", "CSE101", "01", "자료구조", 3, 40,
		meeting(1, 0, 3, "제1공학관", "101")))
	courses.Create(ctx, newCourse("c2", "CSE102", "01", "알고리즘", 3, 40,
		meeting(2, 0, 3, "제1공학관", "102")))

	if _, err := svc.Apply(ctx, "u1", &dto.ApplyRequest{CourseRef: "c1", Method: model.MethodFCFS}); err != nil {
		t.Fatalf("首门报名失败: %v", err)
	}
	if _, err := svc.Apply(ctx, "u1", &dto.ApplyRequest{CourseRef: "c2", Method: model.MethodFCFS}); !errors.Is(err, ErrCreditLimitExceeded) {
		t.Errorf("期望 ErrCreditLimitExceeded，实际: %v", err)
	}
}

func TestEnrollBID_DeductsPoints(t *testing.T) {
	svc, _, courses, users := newTestEnrollmentService()
	ctx := context.Background()
	seedUser(t, users, "u1", 100)
	courses.Create(ctx, newCourse("c1", "CSE101", "01", "자료구조", 3, 1,
		meeting(1, 0, 3, "제1공학관", "101")))

	if _, err := svc.Apply(ctx, "u1", &dto.ApplyRequest{CourseRef: "c1", Method: model.MethodBID}); !errors.Is(err, ErrBidRequired) {
		t.Errorf("无出价应返回 ErrBidRequired，实际: %v", err)
	}

	app, err := svc.Apply(ctx, "u1", &dto.ApplyRequest{CourseRef: "c1", Method: model.MethodBID, BidPoints: 40})
	if err != nil {
		t.Fatalf("베팅报名失败: %v", err)
	}
	if app.Status != model.AppStatusPending {
		t.Errorf("期望状态=pending，实际=%s", app.Status)
	}

	u, _ := users.GetByID(ctx, "u1")
	if u.Points != 60 {
		t.Errorf("期望扣点后余额=60，实际=%d", u.Points)
	}

	seedUser(t, users, "u2", 30)
	if _, err := svc.Apply(ctx, "u2", &dto.ApplyRequest{CourseRef: "c1", Method: model.MethodBID, BidPoints: 50}); !errors.Is(err, ErrInsufficientPoints) {
		t.Errorf("期望 ErrInsufficientPoints，实际: %v", err)
	}
}

func TestEnrollCancel_RefundsPendingBid(t *testing.T) {
	svc, _, courses, users := newTestEnrollmentService()
	ctx := context.Background()
	seedUser(t, users, "u1", 100)
	courses.Create(ctx, newCourse("c1", "CSE101", "01", "자료구조", 3, 1,
		meeting(1, 0, 3, "제1공학관", "101")))

	app, err := svc.Apply(ctx, "u1", &dto.ApplyRequest{CourseRef: "c1", Method: model.MethodBID, BidPoints: 40})
	if err != nil {
		t.Fatalf("베팅报名失败: %v", err)
	}

	if err := svc.Cancel(ctx, "u1", app.ID); err != nil {
		t.Fatalf("取消失败: %v", err)
	}
	u, _ := users.GetByID(ctx, "u1")
	if u.Points != 100 {
		t.Errorf("取消后应全额退点，实际余额=%d", u.Points)
	}
	if err := svc.Cancel(ctx, "u1", app.ID); !errors.Is(err, ErrNotCancelable) {
		t.Errorf("已取消记录再取消应返回 ErrNotCancelable，实际: %v", err)
	}
}

func TestEnrollCancel_ReleasesSeat(t *testing.T) {
	svc, _, courses, users := newTestEnrollmentService()
	ctx := context.Background()
	seedUser(t, users, "u1", 100)
	courses.Create(ctx, newCourse("c1", "CSE101", "01", "자료구조", 3, 1,
		meeting(1, 0, 3, "제1공학관", "101")))

	app, err := svc.Apply(ctx, "u1", &dto.ApplyRequest{CourseRef: "c1", Method: model.MethodFCFS})
	if err != nil {
		t.Fatalf("报名失败: %v", err)
	}
	if err := svc.Cancel(ctx, "u1", app.ID); err != nil {
		t.Fatalf("取消失败: %v", err)
	}
	c, _ := courses.GetByID(ctx, "c1")
	if c.Enrolled != 0 {
		t.Errorf("取消后名额应释放，实际 enrolled=%d", c.Enrolled)
	}

	if err := svc.Cancel(ctx, "u2", app.ID); !errors.Is(err, ErrApplicationNotFound) {
		t.Errorf("他人记录应返回 ErrApplicationNotFound，实际: %v", err)
	}
}

func TestDraw_HighBidWinsAndLoserRefunded(t *testing.T) {
	svc, _, courses, users := newTestEnrollmentService()
	ctx := context.Background()
	seedUser(t, users, "u1", 100)
	seedUser(t, users, "u2", 100)
	courses.Create(ctx, newCourse("c1", "CSE101", "01", "자료구조", 3, 1,
		meeting(1, 0, 3, "제1공학관", "101")))

	a1, err := svc.Apply(ctx, "u1", &dto.ApplyRequest{CourseRef: "c1", Method: model.MethodBID, BidPoints: 30})
	if err != nil {
		t.Fatalf("u1 报名失败: %v", err)
	}
	a2, err := svc.Apply(ctx, "u2", &dto.ApplyRequest{CourseRef: "c1", Method: model.MethodBID, BidPoints: 70})
	if err != nil {
		t.Fatalf("u2 报名失败: %v", err)
	}

	result, err := svc.Draw(ctx, "c1")
	if err != nil {
		t.Fatalf("开奖失败: %v", err)
	}
	if len(result.Winners) != 1 || result.Winners[0] != a2.ID {
		t.Errorf("高出价应中签，实际 winners=%v", result.Winners)
	}
	if len(result.Losers) != 1 || result.Losers[0] != a1.ID {
		t.Errorf("低出价应落选，实际 losers=%v", result.Losers)
	}

	// 落选者全额退点，中签者不退
	u1, _ := users.GetByID(ctx, "u1")
	if u1.Points != 100 {
		t.Errorf("落选者应退点至 100，实际=%d", u1.Points)
	}
	u2, _ := users.GetByID(ctx, "u2")
	if u2.Points != 30 {
		t.Errorf("中签者不退点，期望余额=30，实际=%d", u2.Points)
	}

	c, _ := courses.GetByID(ctx, "c1")
	if c.Enrolled != 1 {
		t.Errorf("开奖后名额占用应为 1，实际=%d", c.Enrolled)
	}
}

func TestDraw_DeterministicWithSeed(t *testing.T) {
	// 同一种子、同一批同价申请，两次独立开奖必须选中同一批用户。
	// 申请 ID 每次运行都是新生成的 UUID，不能直接比较，
	// 这里按用户归集中签结果
	applicants := []string{"u1", "u2", "u3", "u4"}
	run := func() []string {
		svc, _, courses, users := newTestEnrollmentService()
		ctx := context.Background()
		courses.Create(ctx, newCourse("c1", "CSE101", "01", "자료구조", 3, 2,
			meeting(1, 0, 3, "제1공학관", "101")))
		for _, id := range applicants {
			seedUser(t, users, id, 100)
			if _, err := svc.Apply(ctx, id, &dto.ApplyRequest{CourseRef: "c1", Method: model.MethodBID, BidPoints: 50}); err != nil {
				t.Fatalf("%s 报名失败: %v", id, err)
			}
		}
		if _, err := svc.Draw(ctx, "c1"); err != nil {
			t.Fatalf("开奖失败: %v", err)
		}

		// 开奖后中签者为 enrolled，落选者已被剔除出有效记录
		var winners []string
		for _, id := range applicants {
			apps, err := svc.ListMine(ctx, id)
			if err != nil {
				t.Fatalf("查询 %s 报名记录失败: %v", id, err)
			}
			if len(apps) == 1 && apps[0].Status == model.AppStatusEnrolled {
				winners = append(winners, id)
			}
		}
		return winners
	}

	first := run()
	second := run()
	if len(first) != 2 {
		t.Fatalf("期望 2 名中签，实际 %d", len(first))
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("同种子开奖中签用户不一致: %v vs %v", first, second)
	}
}

func TestEnrollFCFS_WaitlistWhenNotClosed(t *testing.T) {
	// fcfs_close_on_full=false：满员的선착순申请转入候补而非拒绝，
	// 名额释放后由开奖按出价（候补 bid=0 排最后）补入
	cfg := testConfig()
	cfg.Enrollment.FCFSCloseOnFull = false
	repos, courses, users := newTestRepos()
	svc := NewEnrollmentService(cfg, repos, zap.NewNop())
	ctx := context.Background()

	seedUser(t, users, "u1", 100)
	seedUser(t, users, "u2", 100)
	courses.Create(ctx, newCourse("c1", "CSE101", "01", "자료구조", 3, 1,
		meeting(1, 0, 3, "제1공학관", "101")))

	first, err := svc.Apply(ctx, "u1", &dto.ApplyRequest{CourseRef: "c1", Method: model.MethodFCFS})
	if err != nil {
		t.Fatalf("首位报名失败: %v", err)
	}
	waiting, err := svc.Apply(ctx, "u2", &dto.ApplyRequest{CourseRef: "c1", Method: model.MethodFCFS})
	if err != nil {
		t.Fatalf("满员时应转入候补而非报错: %v", err)
	}
	if waiting.Status != model.AppStatusPending {
		t.Errorf("期望候补状态=pending，实际=%s", waiting.Status)
	}
	if waiting.BidPoints != 0 {
		t.Errorf("선착순候补不应携带出价，实际=%d", waiting.BidPoints)
	}

	// 名额释放后开奖补入候补者
	if err := svc.Cancel(ctx, "u1", first.ID); err != nil {
		t.Fatalf("取消失败: %v", err)
	}
	result, err := svc.Draw(ctx, "c1")
	if err != nil {
		t.Fatalf("开奖失败: %v", err)
	}
	if len(result.Winners) != 1 || result.Winners[0] != waiting.ID {
		t.Errorf("候补者应补入名额，实际 winners=%v", result.Winners)
	}
}
