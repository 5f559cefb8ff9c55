package campus

import "testing"

func TestRiskFor_Diagonal(t *testing.T) {
	// 同群对角线恒为"同一建筑群"哨兵（H 群除外，线上恒为 비대면）
	for _, g := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		w, ok := RiskFor(g, g)
		if !ok || w != WarnSame {
			t.Errorf("RiskFor(%s,%s)=%v ok=%v，期望 WarnSame", g, g, w, ok)
		}
	}
	if w, _ := RiskFor("H", "H"); w != WarnRemote {
		t.Errorf("RiskFor(H,H)=%v，期望 WarnRemote", w)
	}
}

func TestRiskFor_RemoteColumn(t *testing.T) {
	// 无论方向如何，涉及 H 群（线上）的到达项恒为 비대면
	for _, g := range []string{"A", "B", "C", "D", "E", "F", "G", "H"} {
		if w, ok := RiskFor(g, "H"); !ok || w != WarnRemote {
			t.Errorf("RiskFor(%s,H)=%v ok=%v，期望 WarnRemote", g, w, ok)
		}
	}
}

func TestRiskFor_Asymmetry(t *testing.T) {
	// 原始数据的已知非对称项：A→B=주의 而 B→A=-
	ab, ok := RiskFor("A", "B")
	if !ok || ab != WarnCaution {
		t.Fatalf("RiskFor(A,B)=%v ok=%v，期望 주의", ab, ok)
	}
	ba, ok := RiskFor("B", "A")
	if !ok || ba != WarnNotApplicable {
		t.Fatalf("RiskFor(B,A)=%v ok=%v，期望 -", ba, ok)
	}
}

func TestRiskFor_UnknownGroup(t *testing.T) {
	if _, ok := RiskFor("Z", "A"); ok {
		t.Error("未知出发群不应命中")
	}
	if _, ok := RiskFor("A", "Z"); ok {
		t.Error("未知到达群不应命中")
	}
}

func TestRiskBetween_FallsBackToReverse(t *testing.T) {
	// B→A 为"-"，但 A→B=주의：对称查询应兜底到反向取值
	w, ok := RiskBetween("B", "A")
	if !ok || w != WarnCaution {
		t.Errorf("RiskBetween(B,A)=%v ok=%v，期望回退到 주의", w, ok)
	}
}

func TestRiskBetween_BothNotApplicable(t *testing.T) {
	// A↔E 双向均为"-"：维持"-"，由调用方抑制告警
	w, ok := RiskBetween("A", "E")
	if !ok || w != WarnNotApplicable {
		t.Errorf("RiskBetween(A,E)=%v ok=%v，期望 -", w, ok)
	}
}

func TestRiskBetween_ForwardWins(t *testing.T) {
	// 正向有值时不看反向
	w, ok := RiskBetween("A", "B")
	if !ok || w != WarnCaution {
		t.Errorf("RiskBetween(A,B)=%v ok=%v，期望 주의", w, ok)
	}
}

func TestMatrix_Complete(t *testing.T) {
	// 8×8 矩阵全量覆盖
	groups := []string{"A", "B", "C", "D", "E", "F", "G", "H"}
	for _, from := range groups {
		for _, to := range groups {
			if _, ok := RiskFor(from, to); !ok {
				t.Errorf("矩阵缺失 %s→%s", from, to)
			}
		}
	}
}
