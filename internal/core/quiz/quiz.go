// Package quiz 實作 onboarding 測驗的推導規則：
// 膚質分類、肌膚困擾與保養建議，皆為答案映射上的純函數。
package quiz

// 測驗問題 id（與前端問卷定義一致）
const (
	KeySkinFeelAfterCleanse  = "q1_skin_feel_after_cleanse"
	KeyMiddayOiliness        = "q2_midday_oiliness"
	KeyDrySkinSensation      = "q3_dry_skin_sensation"
	KeyReactivity            = "q4_product_environmental_reaction"
	KeyRednessFadingTime     = "q5_redness_fading_time"
	KeyKnownIrritants        = "q6_known_irritants"
	KeyCommonBlemishType     = "q7_common_blemish_type"
	KeyPostBreakoutMark      = "q8_post_breakout_mark"
	KeyOverallSkinTone       = "q9_overall_skin_tone"
	KeySkinTextureFeel       = "q10_skin_texture_feel"
	KeySkinSnapBack          = "q11_skin_snap_back"
	KeySPFConsistency        = "q12_spf_consistency"
	KeyPreferredTextures     = "q14_preferred_product_textures"
	KeyOpenTextGoals         = "q15_open_text_goals"
)

// 選項值
const (
	// q1 洗臉後膚感
	VeryDryTightFlaky   = "very_dry_tight_flaky"
	MildlyTight         = "mildly_tight"
	ComfortableBalanced = "comfortable_balanced"
	SlightlyOilyResidue = "slightly_oily_residue"

	// q2 午間出油
	TzoneNoticeablyShiny = "tzone_noticeably_shiny"
	TzoneSubtleShine     = "tzone_subtle_shine"

	// q3 乾燥感受
	FlakyRoughDull      = "flaky_rough_dull"
	PersistentTightness = "persistent_tightness"

	// q5 泛紅消退時間
	StaysRedHours = "stays_red_hours"

	// q6 已知刺激成分
	IrritantFragrance      = "fragrance_perfume"
	IrritantEssentialOils  = "essential_oils"
	IrritantDryingAlcohols = "drying_alcohols"
	IrritantStrongAcids    = "strong_acids"
	IrritantChemicalSPF    = "chemical_sunscreens"

	// q7 常見瑕疵類型
	BlemishRarely     = "rarely_blemishes"
	BlemishBlackheads = "blackheads"
	BlemishDeepCysts  = "deep_cysts_nodules"

	// q8 痘後痕跡
	DarkBrownSpotsPIH = "dark_brown_spots_pih"

	// q9 整體膚色
	SunSpotsFreckles    = "sun_spots_freckles"
	LargerMelasmaPatch  = "larger_melasma_patches"
	DullLacksRadiance   = "dull_lacks_radiance"

	// q10 膚觸
	NoticeablyRoughBumpy = "noticeably_rough_bumpy"
	MinorBumpsUnevenness = "minor_bumps_unevenness"

	// q11 彈性回復
	VerySlowlyLoose = "very_slowly_loose"
	ModeratelySlow  = "moderately_slow"

	// q12 防曬頻率
	SPFEveryDay    = "every_day_fail"
	SPFRarelyNever = "rarely_never"

	// q14 質地偏好
	TextureLightweightGels = "lightweight_gels_essences"
	TextureRichCreams      = "rich_comforting_creams"
)

// 反應性滑桿達到此值視為高敏感（1–5 級）
const reactivityThreshold = 4
