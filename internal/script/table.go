package script

// t2s maps Traditional characters found in the CBETA sources to their
// Simplified forms. Characters identical in both scripts are left out.
var t2s = map[rune]rune{
	'經': '经', '與': '与', '無': '无', '萬': '万', '億': '亿', '數': '数', '證': '证', '獲': '获',
	'處': '处', '調': '调', '諸': '诸', '遊': '游', '捨': '舍', '慚': '惭', '為': '为', '饒': '饶',
	'寶': '宝', '島': '岛', '於': '于', '達': '达', '礙': '碍', '際': '际', '別': '别', '雖': '虽',
	'厭': '厌', '護': '护', '間': '间', '稱': '称', '現': '现', '濟': '济', '衆': '众', '眾': '众',
	'誨': '诲', '賢': '贤', '憐': '怜', '愍': '悯', '著': '着', '淨': '净', '訶': '诃', '羅': '罗',
	'譯': '译', '聞': '闻', '時': '时', '闍': '阇', '薩': '萨', '勝': '胜', '辯': '辩', '積': '积',
	'輞': '辋', '嚴': '严', '爾': '尔', '觀': '观', '紹': '绍', '見': '见', '釋': '释', '勢': '势',
	'蓋': '盖', '藥': '药', '變': '变', '連': '连', '葉': '叶', '漢': '汉', '聲': '声', '猶': '犹',
	'閻': '阎', '樓': '楼', '濁': '浊', '屬': '属', '來': '来', '啟': '启', '請': '请', '種': '种',
	'過': '过', '異': '异', '蓮': '莲', '華': '华', '從': '从', '語': '语', '問': '问', '許': '许',
	'隨': '随', '應': '应', '離': '离', '覺': '觉', '諦': '谛', '聽': '听', '當': '当', '說': '说',
	'貪': '贪', '瞋': '嗔', '癡': '痴', '惛': '昏', '愛': '爱', '謂': '谓', '殺': '杀', '盜': '盗',
	'財': '财', '順': '顺', '樂': '乐', '義': '义', '滅': '灭', '邊': '边', '實': '实', '業': '业',
	'緣': '缘', '電': '电', '懷': '怀', '攝': '摄', '脫': '脱', '減': '减', '詞': '词', '莊': '庄',
	'門': '门', '塵': '尘', '發': '发', '獄': '狱', '會': '会', '國': '国', '後': '后', '擁': '拥',
	'滿': '满', '廣': '广', '擔': '担', '決': '决', '臨': '临', '終': '终', '親': '亲', '彌': '弥',
	'圍': '围', '繞': '绕', '盡': '尽', '墮': '堕', '惡': '恶', '難': '难', '設': '设', '書': '书',
	'讀': '读', '誦': '诵', '鹹': '咸', '頂': '顶', '龍': '龙', '歡': '欢', '復': '复', '願': '愿',
	'報': '报', '極': '极', '頭': '头', '壞': '坏', '恆': '恒', '衛': '卫', '豐': '丰', '橫': '横',
	'畢': '毕', '記': '记', '毘': '毗', '嚧': '噜', '鉢': '钵',
}

// s2tSkip lists Simplified characters whose Traditional form depends on
// context; they are left as is when converting to Traditional.
var s2tSkip = map[rune]bool{
	'嗔': true, '昏': true, '悯': true, '咸': true, '舍': true, '后': true,
}

// s2tPrefer overrides the inverse mapping where several Traditional forms
// share one Simplified form.
var s2tPrefer = map[rune]rune{
	'众': '眾',
}
