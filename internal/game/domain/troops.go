package domain

// TroopSet 每个兵种槽位的单位数量。
type TroopSet [TroopSlots]uint32

// SmithyUpgrades 每个兵种槽位的铁匠铺强化等级，上限 20。
type SmithyUpgrades [TroopSlots]uint8

const SmithyMaxLevel = 20

// Total 全部单位数量。
func (t TroopSet) Total() uint32 {
	var sum uint32
	for _, n := range t {
		sum += n
	}
	return sum
}

func (t TroopSet) IsEmpty() bool {
	return t.Total() == 0
}

// Sub 逐槽位相减。任一槽位不足时报错。
func (t TroopSet) Sub(o TroopSet) (TroopSet, error) {
	var out TroopSet
	for i := range t {
		if o[i] > t[i] {
			return TroopSet{}, ErrNotEnoughUnits
		}
		out[i] = t[i] - o[i]
	}
	return out, nil
}

// Add 逐槽位相加。
func (t TroopSet) Add(o TroopSet) TroopSet {
	var out TroopSet
	for i := range t {
		out[i] = t[i] + o[i]
	}
	return out
}
