package common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// AnswerKind 測驗答案的型別標記
type AnswerKind int

const (
	AnswerNone   AnswerKind = iota // 無答案
	AnswerText                     // 單選（字串值）
	AnswerList                     // 複選（字串列表）
	AnswerNumber                   // 滑桿（數值）
)

// AnswerValue 單一測驗答案
// 以標記型別取代任意值，規則評估端只透過存取器取值
type AnswerValue struct {
	kind   AnswerKind
	text   string
	list   []string
	number float64
}

// TextAnswer 建立單選答案
func TextAnswer(s string) AnswerValue {
	return AnswerValue{kind: AnswerText, text: s}
}

// ListAnswer 建立複選答案
func ListAnswer(items ...string) AnswerValue {
	return AnswerValue{kind: AnswerList, list: items}
}

// NumberAnswer 建立數值答案
func NumberAnswer(n float64) AnswerValue {
	return AnswerValue{kind: AnswerNumber, number: n}
}

// Kind 回傳答案型別
func (v AnswerValue) Kind() AnswerKind {
	return v.kind
}

// Text 取得字串值，非字串型別回傳 false
func (v AnswerValue) Text() (string, bool) {
	if v.kind != AnswerText {
		return "", false
	}
	return v.text, true
}

// List 取得列表值，單選答案視為單元素列表
func (v AnswerValue) List() []string {
	switch v.kind {
	case AnswerList:
		return v.list
	case AnswerText:
		return []string{v.text}
	default:
		return nil
	}
}

// Number 取得數值，數字字串也接受（前端滑桿偶爾送出字串）
func (v AnswerValue) Number() (float64, bool) {
	switch v.kind {
	case AnswerNumber:
		return v.number, true
	case AnswerText:
		if n, err := strconv.ParseFloat(v.text, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

// UnmarshalJSON 接受字串、字串陣列或數值
// null 必須先攔截：json.Unmarshal 對 string 目標會把 null 當作 no-op 吞掉
func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		*v = AnswerValue{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = TextAnswer(s)
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*v = ListAnswer(list...)
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*v = NumberAnswer(n)
		return nil
	}

	return fmt.Errorf("unsupported answer value: %s", string(data))
}

// MarshalJSON 依型別輸出原始形狀
func (v AnswerValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case AnswerText:
		return json.Marshal(v.text)
	case AnswerList:
		return json.Marshal(v.list)
	case AnswerNumber:
		return json.Marshal(v.number)
	default:
		return []byte("null"), nil
	}
}

// AnswerMap 問題 id 到答案的映射
// onboarding 期間逐題累積，完成後併入 UserProfile 不再變動
type AnswerMap map[string]AnswerValue

// Text 取得指定問題的字串答案，缺漏或型別不符回傳空字串
func (m AnswerMap) Text(key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].Text()
	return s
}

// List 取得指定問題的列表答案，缺漏回傳 nil
func (m AnswerMap) List(key string) []string {
	if m == nil {
		return nil
	}
	return m[key].List()
}

// Number 取得指定問題的數值答案，缺漏或無法解析回傳 0
func (m AnswerMap) Number(key string) float64 {
	if m == nil {
		return 0
	}
	n, _ := m[key].Number()
	return n
}

// Contains 檢查指定問題的列表答案是否包含某值
func (m AnswerMap) Contains(key, value string) bool {
	for _, item := range m.List(key) {
		if item == value {
			return true
		}
	}
	return false
}
