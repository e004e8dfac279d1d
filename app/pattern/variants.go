package pattern

import "sync"

// scriptPairs lists simplified/traditional counterparts as two-rune strings.
// A simplified form may appear more than once when it merges several
// traditional characters (发 -> 發, 髮).
var scriptPairs = []string{
	"爱愛", "罢罷", "备備", "贝貝", "笔筆", "边邊", "变變", "宾賓", "补補", "参參",
	"仓倉", "产產", "长長", "尝嘗", "车車", "彻徹", "尘塵", "陈陳", "衬襯", "称稱",
	"惩懲", "迟遲", "齿齒", "冲衝", "虫蟲", "丑醜", "处處", "触觸", "传傳", "疮瘡",
	"闯闖", "创創", "锤錘", "纯純", "词詞", "从從", "聪聰", "丛叢", "错錯", "达達",
	"带帶", "单單", "担擔", "胆膽", "当當", "党黨", "导導", "灯燈", "邓鄧", "敌敵",
	"递遞", "点點", "电電", "淀澱", "东東", "冻凍", "动動", "斗鬥", "独獨", "断斷",
	"对對", "队隊", "顿頓", "夺奪", "堕墮", "儿兒", "尔爾", "发發", "发髮", "范範",
	"飞飛", "坟墳", "奋奮", "粪糞", "风風", "凤鳳", "妇婦", "复復", "复複", "盖蓋",
	"干乾", "干幹", "赶趕", "个個", "巩鞏", "沟溝", "构構", "购購", "谷穀", "顾顧",
	"刮颳", "关關", "观觀", "馆館", "广廣", "归歸", "龟龜", "国國", "过過", "还還",
	"汉漢", "号號", "轰轟", "后後", "护護", "沪滬", "划劃", "华華", "画畫", "话話",
	"怀懷", "坏壞", "欢歡", "环環", "换換", "唤喚", "黄黃", "回迴", "会會", "汇匯",
	"汇彙", "伙夥", "获獲", "获穫", "机機", "击擊", "鸡雞", "积積", "极極", "际際",
	"继繼", "价價", "艰艱", "歼殲", "茧繭", "拣揀", "舰艦", "姜薑", "浆漿", "桨槳",
	"奖獎", "讲講", "酱醬", "胶膠", "阶階", "洁潔", "节節", "仅僅", "惊驚", "竞競",
	"旧舊", "举舉", "剧劇", "惧懼", "卷捲", "觉覺", "开開", "课課", "块塊", "夸誇",
	"亏虧", "困睏", "腊臘", "蜡蠟", "兰蘭", "拦攔", "栏欄", "烂爛", "乐樂", "类類",
	"垒壘", "泪淚", "离離", "里裏", "里裡", "礼禮", "丽麗", "厉厲", "励勵", "历歷",
	"历曆", "联聯", "怜憐", "炼煉", "练練", "粮糧", "两兩", "辆輛", "疗療", "辽遼",
	"猎獵", "临臨", "邻鄰", "灵靈", "龄齡", "岭嶺", "刘劉", "龙龍", "楼樓", "娄婁",
	"录錄", "陆陸", "虏虜", "卤滷", "乱亂", "仑侖", "论論", "罗羅", "么麼", "马馬",
	"买買", "卖賣", "迈邁", "麦麥", "脉脈", "满滿", "猫貓", "没沒", "门門", "们們",
	"梦夢", "面麵", "灭滅", "庙廟", "亩畝", "恼惱", "脑腦", "拟擬", "酿釀", "鸟鳥",
	"宁寧", "农農", "欧歐", "盘盤", "凭憑", "苹蘋", "扑撲", "仆僕", "朴樸", "齐齊",
	"气氣", "迁遷", "钱錢", "签簽", "墙牆", "枪槍", "桥橋", "窍竅", "亲親", "轻輕",
	"庆慶", "穷窮", "区區", "趋趨", "权權", "劝勸", "确確", "让讓", "扰擾", "热熱",
	"认認", "荣榮", "洒灑", "伞傘", "丧喪", "扫掃", "涩澀", "杀殺", "晒曬", "伤傷",
	"舍捨", "摄攝", "审審", "声聲", "圣聖", "胜勝", "师師", "湿濕", "时時", "实實",
	"识識", "势勢", "适適", "释釋", "寿壽", "书書", "术術", "树樹", "帅帥", "双雙",
	"说說", "丝絲", "松鬆", "苏蘇", "虽雖", "随隨", "岁歲", "孙孫", "台臺", "台檯",
	"台颱", "态態", "坛壇", "叹嘆", "汤湯", "体體", "条條", "铁鐵", "听聽", "厅廳",
	"头頭", "图圖", "团團", "万萬", "网網", "为為", "伟偉", "卫衛", "稳穩", "问問",
	"无無", "务務", "雾霧", "戏戲", "系係", "系繫", "虾蝦", "吓嚇", "咸鹹", "显顯",
	"险險", "现現", "献獻", "县縣", "线線", "乡鄉", "响響", "向嚮", "协協", "胁脅",
	"写寫", "泻瀉", "谢謝", "兴興", "须鬚", "悬懸", "选選", "学學", "寻尋", "压壓",
	"亚亞", "严嚴", "盐鹽", "艳艷", "厌厭", "阳陽", "养養", "样樣", "药藥", "爷爺",
	"叶葉", "页頁", "业業", "医醫", "仪儀", "艺藝", "亿億", "忆憶", "义義", "议議",
	"阴陰", "隐隱", "应應", "营營", "拥擁", "佣傭", "优優", "犹猶", "邮郵", "游遊",
	"鱼魚", "与與", "语語", "誉譽", "御禦", "渊淵", "园園", "员員", "圆圓", "远遠",
	"愿願", "约約", "跃躍", "岳嶽", "云雲", "运運", "杂雜", "灾災", "赞讚", "赃贓",
	"脏髒", "脏臟", "凿鑿", "枣棗", "灶竈", "斋齋", "毡氈", "战戰", "赵趙", "这這",
	"征徵", "证證", "郑鄭", "只隻", "只祇", "织織", "职職", "执執", "纸紙", "制製",
	"质質", "钟鐘", "钟鍾", "种種", "众眾", "昼晝", "烛燭", "筑築", "庄莊", "桩樁",
	"妆妝", "装裝", "壮壯", "状狀", "准準", "浊濁", "总總", "钻鑽",

	// feed vocabulary
	"预預", "视視", "频頻", "综綜", "赛賽", "讯訊", "闻聞", "订訂", "阅閱", "费費",
	"荐薦", "评評", "测測", "试試", "纪紀", "连連", "续續", "鉴鑒", "赏賞", "恋戀",
	"烧燒", "财財", "经經", "军軍", "译譯", "韩韓", "粤粵", "报報", "组組", "专專",
	"属屬", "级級", "络絡", "题題", "谈談", "访訪", "厨廚", "饭飯", "猪豬", "鸭鴨",
	"鲜鮮", "饮飲", "帮幫", "顶頂", "饰飾", "宝寶", "妈媽", "钢鋼", "习習", "篮籃",
	"场場", "赚賺", "贷貸", "资資", "红紅", "货貨", "惠惠", "抢搶", "简簡", "维維",
	"诈詐", "骗騙", "谣謠", "异異", "难難", "坠墜", "恶惡", "残殘", "辑輯", "独獨",
	"剪剪", "摄攝", "届屆", "载載", "页頁", "际際", "热熱", "搜搜", "索索", "爆爆",
	"闪閃", "刷刷", "挂掛", "戏戲", "乐樂", "频頻", "喷噴", "转轉", "发發", "伦倫",
	"亚亞", "东東", "陆陸", "港港", "湾灣", "华華", "侨僑", "乔喬", "鸿鴻", "齐齊",
}

// Variants maps a character to its cross-script counterparts.
type Variants map[rune][]rune

var (
	defaultVariants     Variants
	defaultVariantsOnce sync.Once
)

// DefaultVariants returns the built-in simplified/traditional table.
func DefaultVariants() Variants {
	defaultVariantsOnce.Do(func() {
		defaultVariants = NewVariants(scriptPairs)
	})
	return defaultVariants
}

// NewVariants builds a symmetric table from two-rune pair strings. Pairs whose
// runes are identical or that are not exactly two runes long are ignored.
func NewVariants(pairs []string) Variants {
	v := make(Variants)
	for _, pair := range pairs {
		runes := []rune(pair)
		if len(runes) != 2 || runes[0] == runes[1] {
			continue
		}
		v.link(runes[0], runes[1])
		v.link(runes[1], runes[0])
	}
	return v
}

func (v Variants) link(from, to rune) {
	for _, existing := range v[from] {
		if existing == to {
			return
		}
	}
	v[from] = append(v[from], to)
}

// Lookup returns the counterparts of r, if any.
func (v Variants) Lookup(r rune) []rune {
	return v[r]
}
