package dogwhistle

/*------------------------------------------------------------------
 *
 * Purpose:	Frame integrity check.
 *
 * Description:	CRC-16/CCITT-FALSE.  Polynomial 0x1021, initial
 *		register 0xffff, MSB first, no reflection, no final
 *		exclusive-or.  Computed over the header and payload
 *		bytes before they are expanded into bits.
 *
 *------------------------------------------------------------------*/

const CRC16_POLY = 0x1021
const CRC16_INIT = 0xffff

func crc16(data []byte) uint16 {

	var crc uint16 = CRC16_INIT

	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = (crc << 1) ^ CRC16_POLY
			} else {
				crc <<= 1
			}
		}
	}

	return crc
}
