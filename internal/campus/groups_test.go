package campus

import "testing"

// ── GroupOf 测试 ──

func TestGroupOf_ExactMatch(t *testing.T) {
	cases := []struct {
		building string
		want     string
	}{
		{"제1공학관", "A"},
		{"백남음악관", "A"},
		{"사범대학본관", "B"},
		{"경영대학", "C"},
		{"자연과학관", "D"},
		{"IT.BT관", "E"},
		{"사회과학관", "F"},
		{"토목건축관", "G"},
		{"온라인", "H"},
	}
	for _, tc := range cases {
		got, ok := GroupOf(tc.building)
		if !ok {
			t.Errorf("GroupOf(%q) 应命中分群", tc.building)
			continue
		}
		if got != tc.want {
			t.Errorf("GroupOf(%q)=%s，期望 %s", tc.building, got, tc.want)
		}
	}
}

func TestGroupOf_NotFound(t *testing.T) {
	// 空名、未收录名、空白变体均应判为未知，而不是报错
	for _, name := range []string{"", "미래관", " 제1공학관", "제1공학관 ", "제1공학"} {
		if _, ok := GroupOf(name); ok {
			t.Errorf("GroupOf(%q) 不应命中任何分群", name)
		}
	}
}

func TestGroupOf_NoDuplicateAcrossGroups(t *testing.T) {
	// 规范数据约束：建筑名不跨群重复
	seen := make(map[string]string)
	for _, g := range Groups() {
		for _, b := range g.Buildings {
			if prev, dup := seen[b]; dup {
				t.Errorf("建筑 %q 同时出现在分群 %s 和 %s", b, prev, g.GroupID)
			}
			seen[b] = g.GroupID
		}
	}
}

func TestGroupName(t *testing.T) {
	if got := GroupName("A"); got != "공학" {
		t.Errorf("GroupName(A)=%s，期望 공학", got)
	}
	if got := GroupName("Z"); got != "" {
		t.Errorf("未知分群应返回空串，实际 %q", got)
	}
}

func TestSameGroup(t *testing.T) {
	if !SameGroup("제1공학관", "제2공학관") {
		t.Error("同群建筑应判为同群")
	}
	if SameGroup("제1공학관", "경영대학") {
		t.Error("跨群建筑不应判为同群")
	}
	// 任一建筑未收录时返回 false，而不是把"未知"当作同群或安全
	if SameGroup("제1공학관", "미래관") {
		t.Error("未收录建筑不应判为同群")
	}
}

func TestGroups_ReturnsCopy(t *testing.T) {
	gs := Groups()
	if len(gs) != 8 {
		t.Fatalf("期望 8 个分群，实际 %d", len(gs))
	}
	gs[0].Buildings[0] = "篡改"
	if got, _ := GroupOf("제1공학관"); got != "A" {
		t.Error("修改 Groups() 返回值不应影响静态表")
	}
}
